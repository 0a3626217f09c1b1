package settings

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the settings pages on the authenticated app group.
func RegisterRoutes(app *echo.Group, h *Handler) {
	app.GET("/settings", h.Index)
	app.GET("/settings/:tab", h.Show)
	app.POST("/settings/:tab", h.Update)
}
