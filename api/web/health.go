package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func Health(c echo.Context) error {
	noCache(c)
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
