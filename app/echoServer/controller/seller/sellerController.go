package seller

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookmart/app/echoServer/respond"
	"bookmart/model"
	sellersvc "bookmart/service/seller"
)

type Controller struct {
	Svc sellersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/stores
func (h *Controller) CreateStore(c echo.Context) error {
	var req CreateStoreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)
	if err := h.Svc.CreateStore(c.Request().Context(), uid, req.StoreID); err != nil {
		return respond.Err(c, h.Log, "create store", err)
	}
	return respond.OK(c, nil)
}

// POST /v1/stores/:store_id/books
func (h *Controller) AddBook(c echo.Context) error {
	var req AddBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)
	book := &model.Book{
		BookID:        req.BookID,
		StockLevel:    req.StockLevel,
		Price:         req.Price,
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		OriginalTitle: req.OriginalTitle,
		Translator:    req.Translator,
		PubYear:       req.PubYear,
		Pages:         req.Pages,
		Binding:       req.Binding,
		ISBN:          req.ISBN,
		CurrencyUnit:  req.CurrencyUnit,
		Tags:          req.Tags,
		Pictures:      req.Pictures,
		AuthorIntro:   req.AuthorIntro,
		BookIntro:     req.BookIntro,
		Content:       req.Content,
	}
	if err := h.Svc.AddBook(c.Request().Context(), uid, c.Param("store_id"), book); err != nil {
		return respond.Err(c, h.Log, "add book", err)
	}
	return respond.OK(c, nil)
}

// POST /v1/stores/:store_id/books/:book_id/stock
func (h *Controller) AddStockLevel(c echo.Context) error {
	var req AddStockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)
	if err := h.Svc.AddStockLevel(c.Request().Context(), uid, c.Param("store_id"), c.Param("book_id"), req.AddStockLevel); err != nil {
		return respond.Err(c, h.Log, "add stock level", err)
	}
	return respond.OK(c, nil)
}
