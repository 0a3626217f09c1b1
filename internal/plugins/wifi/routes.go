package wifi

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the wifi page on the authenticated app group.
func RegisterRoutes(app *echo.Group, h *Handler) {
	app.GET("/wifi", h.Page)
	app.POST("/wifi/connect", h.Connect)
}
