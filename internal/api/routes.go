// routes.go - Route registration
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	apiGroup := e.Group("/api")

	apiGroup.GET("/health", h.HandleHealth)
	apiGroup.GET("/connection", h.HandleConnection)

	apiGroup.GET("/events/recent", h.HandleRecentEvents)
	apiGroup.GET("/events/recent.msgpack", h.HandleRecentEventsMsgpack)

	apiGroup.GET("/inventory", h.HandleInventory)
	apiGroup.GET("/agents", h.HandleAgents)
	apiGroup.GET("/metrics", h.HandleMetrics)
	apiGroup.GET("/sustainability", h.HandleSustainability)

	apiGroup.GET("/alerts", h.HandleAlerts)
	apiGroup.DELETE("/alerts/:id", h.HandleDismissAlert)

	commands := apiGroup.Group("/commands")
	commands.POST("/demand-spike", h.HandleDemandSpike)
	commands.POST("/supplier-delay", h.HandleSupplierDelay)
	commands.POST("/optimize", h.HandleTriggerOptimization)
	commands.POST("/reorder", h.HandleCreateReorder)
}

// RegisterMetrics exposes the Prometheus registry on /metrics.
func RegisterMetrics(e *echo.Echo, reg *prometheus.Registry) {
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
}
