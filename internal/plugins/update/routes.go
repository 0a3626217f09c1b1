package update

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes mounts the update manager on the authenticated app group.
// Request bodies are capped a little above the bundle limit so multipart
// overhead does not reject a maximal bundle.
func RegisterRoutes(app *echo.Group, h *Handler) {
	app.GET("/update", h.Page)
	app.POST("/update", h.Upload, echomw.BodyLimit("101M"))
}
