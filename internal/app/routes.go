package app

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/metrics"
	"github.com/molinar-iot/setup-dashboard/internal/middleware"
	"github.com/molinar-iot/setup-dashboard/internal/plugins/auth"
	"github.com/molinar-iot/setup-dashboard/internal/plugins/settings"
	"github.com/molinar-iot/setup-dashboard/internal/plugins/update"
	"github.com/molinar-iot/setup-dashboard/internal/plugins/wifi"
	"github.com/molinar-iot/setup-dashboard/internal/session"
	"github.com/molinar-iot/setup-dashboard/internal/templates"
	"github.com/molinar-iot/setup-dashboard/internal/templates/layouts"
)

// contextKeyRoute carries the menu entry a route belongs to.
const contextKeyRoute = "layout_route"

// RegisterRoutes sets up all application routes. It registers public routes
// directly and delegates to each plugin's route registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo
	middleware.LayoutInjector = injectLayout

	// --- Public Routes ---

	e.GET("/", a.landing)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", metrics.Handler())
	e.StaticFS("/static", templates.Static())

	e.POST("/language/toggle", a.toggleLanguage)
	e.POST("/language/:lang", a.setLanguage)

	// --- Plugin Routes ---

	authService := auth.NewAuthService(a.Device)
	auth.RegisterRoutes(e, auth.NewHandler(authService, a.Sessions.Hosts().GatewayAddress()))

	// Everything under /app needs a token the device still accepts.
	authed := e.Group("/app", auth.RequireAuth())
	authed.GET("", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, auth.DashboardPath)
	})
	authed.GET("/dashboard", a.dashboard, withRoute(layouts.RouteDashboard))

	wifi.RegisterRoutes(authed.Group("", withRoute(layouts.RouteWiFi)),
		wifi.NewHandler(wifi.NewWiFiService(a.Device)))

	settings.RegisterRoutes(authed.Group("", withRoute(layouts.RouteSettings)),
		settings.NewHandler(settings.NewSettingsService(a.Settings, a.Sealer)))

	update.RegisterRoutes(authed.Group("", withRoute(layouts.RouteUpdate)),
		update.NewHandler(update.NewUpdateService(a.Device, a.Config.Upload.Pause)))
}

// withRoute marks the menu entry its routes belong to.
func withRoute(r layouts.Route) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextKeyRoute, r)
			return next(c)
		}
	}
}

// injectLayout copies the page chrome from the Echo context and the
// session into the render context.
func injectLayout(c echo.Context, ctx context.Context) context.Context {
	ctx = layouts.SetCSRFToken(ctx, middleware.GetCSRFToken(c))
	ctx = layouts.SetRequestID(ctx, middleware.GetRequestID(c))
	if r, ok := c.Get(contextKeyRoute).(layouts.Route); ok {
		ctx = layouts.SetActiveRoute(ctx, r)
	}

	sess := session.FromContext(c)
	if sess == nil {
		return ctx
	}
	st, err := sess.State(ctx)
	if err != nil {
		return ctx
	}
	host, _ := sess.HostURL(ctx)

	ctx = layouts.SetLanguage(ctx, st.Language)
	ctx = layouts.SetIsAuthenticated(ctx, st.IsAuthenticated)
	return layouts.SetDevice(ctx, host, string(st.WiFiMode), st.IPAddress)
}
