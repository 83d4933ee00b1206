// Package main bookmart API.
//
// @title           bookmart API
// @version         1.0
// @description     Online bookstore transaction backend (catalog, orders, escrow payments).
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

	"bookmart/app/echoServer"
	authctrl "bookmart/app/echoServer/controller/auth"
	orderctrl "bookmart/app/echoServer/controller/order"
	searchctrl "bookmart/app/echoServer/controller/search"
	sellerctrl "bookmart/app/echoServer/controller/seller"
	walletctrl "bookmart/app/echoServer/controller/wallet"
	"bookmart/app/echoServer/validation"
	"bookmart/config"
	bookrepo "bookmart/repository/book"
	orderrepo "bookmart/repository/order"
	storerepo "bookmart/repository/store"
	userrepo "bookmart/repository/user"
	authsvc "bookmart/service/auth"
	ordersvc "bookmart/service/order"
	searchsvc "bookmart/service/search"
	sellersvc "bookmart/service/seller"
	walletsvc "bookmart/service/wallet"
	"bookmart/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB through the pgx driver
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	// repos
	txr := database.NewRunner(db)
	ur := userrepo.New(db)
	sr := storerepo.New(db)
	br := bookrepo.New(db)
	or := orderrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	ss := sellersvc.New(ur, sr, br)
	ords := ordersvc.New(txr, ur, sr, br, or, cfg.OrderTTL, log)
	ws := walletsvc.New(txr, ur, as)
	qs := searchsvc.New(br)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	sellerC := &sellerctrl.Controller{Svc: ss, V: v, Log: log}
	orderC := &orderctrl.Controller{Svc: ords, V: v, Log: log}
	walletC := &walletctrl.Controller{Svc: ws, V: v, Log: log}
	searchC := &searchctrl.Controller{Svc: qs, Log: log}

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
		Seller: sellerC,
		Order:  orderC,
		Wallet: walletC,
		Search: searchC,

		AuthSvc:   as,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "order_ttl", cfg.OrderTTL.String())

	e.Logger.Fatal(e.Start(":" + port))
}
