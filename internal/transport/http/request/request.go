// Package request decodes path parameters and JSON bodies into errorbank
// errors the response builder understands.
package request

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Additional-Code/padoca/pkg/errorbank"
)

// PathID parses a positive integer path parameter.
func PathID(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errorbank.BadRequest("invalid "+name, errorbank.WithDetail(name, raw))
	}
	return id, nil
}

// Bind decodes the request body into dst.
func Bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	return nil
}

// Missing builds the error for absent required fields.
func Missing(fields ...string) error {
	return errorbank.BadRequest("missing required fields", errorbank.WithDetail("fields", fields))
}
