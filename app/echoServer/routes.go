package echoServer

import (
	"net/http"

	"github.com/Aniyone/case-4-bookstore/app/echoServer/controller/auth"
	"github.com/Aniyone/case-4-bookstore/app/echoServer/controller/book"
	"github.com/Aniyone/case-4-bookstore/app/echoServer/controller/rental"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Rental    *rental.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "welcome to the library"})
	})
	e.POST("/register", c.Auth.Register)
	e.GET("/login", c.Auth.LoginPage)
	e.POST("/login", c.Auth.Login)
	e.GET("/logout", c.Auth.Logout)

	// The session token rides in a cookie (set at login) and is also
	// accepted from the Authorization header. Unauthenticated requests are
	// sent to the login page, never an error page.
	session := echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "cookie:session,header:Authorization:Bearer ",
		ErrorHandler: func(ctx echo.Context, err error) error {
			return ctx.Redirect(http.StatusSeeOther, "/login")
		},
	})

	// Any authenticated account
	authed := e.Group("", session, SessionClaims())
	authed.GET("/dashboard", c.Book.Dashboard)
	authed.GET("/book/:id", c.Rental.BookDetail)
	authed.POST("/book/:id", c.Rental.Create)
	authed.GET("/reminders", c.Rental.Reminders)

	// Administrator only
	admin := e.Group("/admin", session, SessionClaims(), RequireAdmin())
	admin.GET("", c.Book.AdminList)
	admin.POST("/add", c.Book.Create)
	admin.POST("/edit/:id", c.Book.Update)
	admin.GET("/delete/:id", c.Book.Delete)
	admin.GET("/rentals", c.Rental.All)
}
