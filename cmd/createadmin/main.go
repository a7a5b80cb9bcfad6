// Command createadmin migrates the schema and seeds the administrator
// account. Safe to run repeatedly.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/Aniyone/case-4-bookstore/config"
	"github.com/Aniyone/case-4-bookstore/migrations"
	"github.com/Aniyone/case-4-bookstore/model"
	userrepo "github.com/Aniyone/case-4-bookstore/repository/user"
	"github.com/Aniyone/case-4-bookstore/util/database"
	"github.com/Aniyone/case-4-bookstore/util/hash"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.Run(db, cfg.MigrationsPath); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	ur := userrepo.New(db)

	if _, err := ur.ByUsername(ctx, cfg.AdminUsername); err == nil {
		log.Info("administrator account already exists", "username", cfg.AdminUsername)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Error("lookup failed", "err", err)
		os.Exit(1)
	}

	hashed, err := hash.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Error("hash failed", "err", err)
		os.Exit(1)
	}

	admin := &model.Account{
		Username:     cfg.AdminUsername,
		PasswordHash: hashed,
		IsAdmin:      true,
	}
	if err := ur.Create(ctx, admin); err != nil {
		log.Error("admin create failed", "err", err)
		os.Exit(1)
	}

	log.Info("administrator account created", "username", admin.Username, "id", admin.ID)
}
