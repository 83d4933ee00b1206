package order

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookmart/app/echoServer/respond"
	ordersvc "bookmart/service/order"
)

type Controller struct {
	Svc ordersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/orders
// @Summary Create an order, reserving stock for every line
func (h *Controller) Create(c echo.Context) error {
	var req CreateOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)

	items := make([]ordersvc.Line, 0, len(req.Books))
	for _, b := range req.Books {
		items = append(items, ordersvc.Line{BookID: b.BookID, Count: b.Count})
	}
	orderID, err := h.Svc.Create(c.Request().Context(), uid, req.StoreID, items)
	if err != nil {
		return respond.Err(c, h.Log, "order create", err)
	}
	return respond.OK(c, echo.Map{"order_id": orderID})
}

// POST /v1/orders/:id/payment
func (h *Controller) Pay(c echo.Context) error {
	var req PasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)
	if err := h.Svc.Pay(c.Request().Context(), uid, req.Password, c.Param("id")); err != nil {
		return respond.Err(c, h.Log, "order pay", err)
	}
	return respond.OK(c, nil)
}

// POST /v1/stores/:store_id/orders/:id/shipment
func (h *Controller) Ship(c echo.Context) error {
	uid, _ := c.Get("user_id").(string)
	if err := h.Svc.Ship(c.Request().Context(), uid, c.Param("store_id"), c.Param("id")); err != nil {
		return respond.Err(c, h.Log, "order ship", err)
	}
	return respond.OK(c, nil)
}

// POST /v1/orders/:id/receipt
func (h *Controller) Receive(c echo.Context) error {
	var req PasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)
	if err := h.Svc.Receive(c.Request().Context(), uid, req.Password, c.Param("id")); err != nil {
		return respond.Err(c, h.Log, "order receive", err)
	}
	return respond.OK(c, nil)
}

// POST /v1/orders/:id/cancellation
func (h *Controller) Cancel(c echo.Context) error {
	var req PasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)
	if err := h.Svc.Cancel(c.Request().Context(), uid, req.Password, c.Param("id")); err != nil {
		return respond.Err(c, h.Log, "order cancel", err)
	}
	return respond.OK(c, nil)
}

// GET /v1/orders
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(string)
	orders, err := h.Svc.ListByBuyer(c.Request().Context(), uid)
	if err != nil {
		return respond.Err(c, h.Log, "order list", err)
	}
	return respond.OK(c, echo.Map{"orders": orders})
}

// GET /v1/orders/:id
func (h *Controller) Get(c echo.Context) error {
	detail, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond.Err(c, h.Log, "order get", err)
	}
	return respond.OK(c, echo.Map{"order": detail.Order, "lines": detail.Lines})
}
