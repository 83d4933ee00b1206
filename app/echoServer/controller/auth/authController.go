package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookmart/app/echoServer/jwtx"
	"bookmart/app/echoServer/respond"
	authsvc "bookmart/service/auth"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/users/register
// @Summary Register a new account
// @Success 200 {object} map[string]any
func (h *Controller) Register(c echo.Context) error {
	var req RegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	tok, err := h.Svc.Register(c.Request().Context(), req.UserID, req.Password)
	if err != nil {
		return respond.Err(c, h.Log, "register", err)
	}
	return respond.OK(c, echo.Map{"token": tok})
}

// POST /v1/users/login
func (h *Controller) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	tok, err := h.Svc.Login(c.Request().Context(), req.UserID, req.Password, req.Terminal)
	if err != nil {
		return respond.Err(c, h.Log, "login", err)
	}
	return respond.OK(c, echo.Map{"token": tok})
}

// POST /v1/users/logout
func (h *Controller) Logout(c echo.Context) error {
	uid, _ := c.Get("user_id").(string)
	raw, err := jwtx.RawTokenFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authorization fail."})
	}
	if err := h.Svc.Logout(c.Request().Context(), uid, raw); err != nil {
		return respond.Err(c, h.Log, "logout", err)
	}
	return respond.OK(c, nil)
}

// DELETE /v1/users
func (h *Controller) Unregister(c echo.Context) error {
	var req UnregisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)
	if err := h.Svc.Unregister(c.Request().Context(), uid, req.Password); err != nil {
		return respond.Err(c, h.Log, "unregister", err)
	}
	return respond.OK(c, nil)
}

// POST /v1/users/password
func (h *Controller) ChangePassword(c echo.Context) error {
	var req ChangePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)
	if err := h.Svc.ChangePassword(c.Request().Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		return respond.Err(c, h.Log, "change password", err)
	}
	return respond.OK(c, nil)
}
