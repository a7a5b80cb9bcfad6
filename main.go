// Package main library rental API.
//
// @title           Library Rental API
// @version         1.0
// @description     Library rental service (catalog, rentals, reminders).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Aniyone/case-4-bookstore/app/echoServer"
	authctrl "github.com/Aniyone/case-4-bookstore/app/echoServer/controller/auth"
	bookctrl "github.com/Aniyone/case-4-bookstore/app/echoServer/controller/book"
	rentalctrl "github.com/Aniyone/case-4-bookstore/app/echoServer/controller/rental"
	"github.com/Aniyone/case-4-bookstore/app/echoServer/validation"
	"github.com/Aniyone/case-4-bookstore/config"
	"github.com/Aniyone/case-4-bookstore/migrations"
	bookrepo "github.com/Aniyone/case-4-bookstore/repository/book"
	rentalrepo "github.com/Aniyone/case-4-bookstore/repository/rental"
	userrepo "github.com/Aniyone/case-4-bookstore/repository/user"
	authsvc "github.com/Aniyone/case-4-bookstore/service/auth"
	booksvc "github.com/Aniyone/case-4-bookstore/service/book"
	rentalsvc "github.com/Aniyone/case-4-bookstore/service/rental"
	"github.com/Aniyone/case-4-bookstore/util/database"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
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

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	rr := rentalrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	bs := booksvc.New(br)
	rs := rentalsvc.New(rr)

	// controllers
	authC := &authctrl.Controller{Svc: as, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, Rentals: rs, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, Books: bs, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:   authC,
		Book:   bookC,
		Rental: rentalC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
