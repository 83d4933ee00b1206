package wallet

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookmart/app/echoServer/respond"
	walletsvc "bookmart/service/wallet"
)

type Controller struct {
	Svc walletsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type AddFundsReq struct {
	Password string `json:"password" validate:"required"`
	AddValue int64  `json:"add_value" validate:"required,gt=0"`
}

// POST /v1/wallet/funds
// @Summary Add funds to the caller's balance
func (h *Controller) AddFunds(c echo.Context) error {
	var req AddFundsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)
	if err := h.Svc.AddFunds(c.Request().Context(), uid, req.Password, req.AddValue); err != nil {
		return respond.Err(c, h.Log, "add funds", err)
	}
	return respond.OK(c, nil)
}

// GET /v1/wallet
func (h *Controller) Balance(c echo.Context) error {
	uid, _ := c.Get("user_id").(string)
	balance, err := h.Svc.Balance(c.Request().Context(), uid)
	if err != nil {
		return respond.Err(c, h.Log, "balance", err)
	}
	return respond.OK(c, echo.Map{"balance": balance})
}
