package config

type App struct {
	Port           string `env:"APP_PORT" default:"8080"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	JWTSecret      string `env:"JWT_SECRET"`
	MigrationsPath string `env:"MIGRATIONS_PATH" default:"migrations"`
	AdminUsername  string `env:"ADMIN_USERNAME" default:"admin"`
	AdminPassword  string `env:"ADMIN_PASSWORD" default:"qwerty1234"`
	Env            string `env:"APP_ENV" default:"dev"`
}
