package http

import "github.com/labstack/echo/v4"

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{
		Success: false,
		Message: message,
	})
}
