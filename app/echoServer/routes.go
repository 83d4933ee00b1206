package echoServer

import (
	"bookmart/app/echoServer/controller/auth"
	"bookmart/app/echoServer/controller/order"
	"bookmart/app/echoServer/controller/search"
	"bookmart/app/echoServer/controller/seller"
	"bookmart/app/echoServer/controller/wallet"
	authsvc "bookmart/service/auth"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth   *auth.Controller
	Seller *seller.Controller
	Order  *order.Controller
	Wallet *wallet.Controller
	Search *search.Controller

	AuthSvc   authsvc.Service
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)
	pub.GET("/books/search", c.Search.Query)

	// Authenticated: JWT signature first, then the stored-session check.
	priv := e.Group("/v1")
	priv.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	priv.Use(Session(c.AuthSvc))

	// Account
	priv.POST("/users/logout", c.Auth.Logout)
	priv.POST("/users/password", c.Auth.ChangePassword)
	priv.DELETE("/users", c.Auth.Unregister)

	// Wallet
	priv.POST("/wallet/funds", c.Wallet.AddFunds)
	priv.GET("/wallet", c.Wallet.Balance)

	// Seller
	priv.POST("/stores", c.Seller.CreateStore)
	priv.POST("/stores/:store_id/books", c.Seller.AddBook)
	priv.POST("/stores/:store_id/books/:book_id/stock", c.Seller.AddStockLevel)
	priv.POST("/stores/:store_id/orders/:id/shipment", c.Order.Ship)

	// Buyer
	priv.POST("/orders", c.Order.Create)
	priv.POST("/orders/:id/payment", c.Order.Pay)
	priv.POST("/orders/:id/receipt", c.Order.Receive)
	priv.POST("/orders/:id/cancellation", c.Order.Cancel)
	priv.GET("/orders", c.Order.List)
	priv.GET("/orders/:id", c.Order.Get)
}
