// Package respond maps service results onto the wire contract: the apperr
// code is the HTTP status and the body carries the message.
package respond

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"bookmart/apperr"
)

// Err writes the coded error. Storage and internal failures are logged as
// errors; domain outcomes are part of normal traffic.
func Err(c echo.Context, log *slog.Logger, op string, err error) error {
	ae := apperr.From(err)
	if ae.Code == apperr.CodeStorage || ae.Code == apperr.CodeInternal {
		log.Error(op, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
	}
	return c.JSON(int(ae.Code), echo.Map{"message": ae.Msg})
}

// OK writes a 200 with "ok" plus any payload fields.
func OK(c echo.Context, payload echo.Map) error {
	body := echo.Map{"message": "ok"}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(int(apperr.CodeOK), body)
}
