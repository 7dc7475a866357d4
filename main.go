// Package main library borrow API.
//
// @title           Library Borrow API
// @version         1.0
// @description     Book catalog and borrow-request lifecycle (submit, approve, deny).
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

	"bookborrow/app/echoServer"
	authctrl "bookborrow/app/echoServer/controller/auth"
	bookctrl "bookborrow/app/echoServer/controller/book"
	borrowctrl "bookborrow/app/echoServer/controller/borrow"
	"bookborrow/app/echoServer/validation"
	"bookborrow/config"
	authrepo "bookborrow/repository/auth"
	bookrepo "bookborrow/repository/book"
	borrowrepo "bookborrow/repository/borrow"
	authsvc "bookborrow/service/auth"
	booksvc "bookborrow/service/book"
	borrowsvc "bookborrow/service/borrow"
	"bookborrow/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ar := authrepo.New(db)
	br := bookrepo.New(db)
	rr := borrowrepo.New(db)

	// services
	as := authsvc.New(ar, cfg.JWTSecret, cfg.AdminEmail)
	bs := booksvc.New(br)
	ws := borrowsvc.New(rr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	borrowC := &borrowctrl.Controller{Svc: ws, V: v, Log: log}

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
		Borrow: borrowC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
