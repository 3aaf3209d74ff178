// Package api exposes the console's local HTTP surface: projected panel
// state for the browser UI plus the operator command triggers.
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/inventory-orchestrator/console/internal/alerts"
	"github.com/inventory-orchestrator/console/internal/models"
	"github.com/inventory-orchestrator/console/internal/panels"
)

// Handler holds the handler dependencies.
type Handler struct {
	feed           Feed
	events         EventSource
	ring           *alerts.Ring
	inventory      *panels.Inventory
	agents         *panels.Agents
	dashboard      *panels.Dashboard
	sustainability *panels.Sustainability
	version        string
	defaultLimit   int
}

// Dependencies holds everything the handlers need, injected at composition
// time. There is no ambient global state.
type Dependencies struct {
	Feed           Feed
	Events         EventSource
	Ring           *alerts.Ring
	Inventory      *panels.Inventory
	Agents         *panels.Agents
	Dashboard      *panels.Dashboard
	Sustainability *panels.Sustainability
	Version        string
	DefaultLimit   int
}

// NewHandler creates the API handler.
func NewHandler(deps Dependencies) *Handler {
	limit := deps.DefaultLimit
	if limit <= 0 {
		limit = 100
	}
	return &Handler{
		feed:           deps.Feed,
		events:         deps.Events,
		ring:           deps.Ring,
		inventory:      deps.Inventory,
		agents:         deps.Agents,
		dashboard:      deps.Dashboard,
		sustainability: deps.Sustainability,
		version:        deps.Version,
		defaultLimit:   limit,
	}
}

// HandleHealth returns console health and connection state.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"version":    h.version,
		"connection": h.feed.State(),
	})
}

// connectionResponse describes the upstream connection.
type connectionResponse struct {
	State      models.ConnectionState `json:"state"`
	EventCount int                    `json:"eventCount"`
}

// HandleConnection returns the upstream connection state.
func (h *Handler) HandleConnection(c echo.Context) error {
	return c.JSON(http.StatusOK, connectionResponse{
		State:      h.feed.State(),
		EventCount: h.events.Len(),
	})
}

// HandleRecentEvents returns the tail of the event log as JSON.
func (h *Handler) HandleRecentEvents(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"events": h.recentEvents(c),
	})
}

// HandleRecentEventsMsgpack returns the tail of the event log
// msgpack-encoded, for UIs that poll the tail frequently.
func (h *Handler) HandleRecentEventsMsgpack(c echo.Context) error {
	data, err := msgpack.Marshal(h.recentEvents(c))
	if err != nil {
		return NewInternalError("failed to encode events", err)
	}
	return c.Blob(http.StatusOK, "application/x-msgpack", data)
}

func (h *Handler) recentEvents(c echo.Context) []models.Event {
	limit := h.defaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	return h.events.Tail(limit)
}

// HandleInventory returns the inventory panel snapshot.
func (h *Handler) HandleInventory(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"skus": h.inventory.Snapshot(),
	})
}

// HandleAgents returns the agent panel snapshot.
func (h *Handler) HandleAgents(c echo.Context) error {
	agents, recent := h.agents.Snapshot()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"agents":         agents,
		"recentMessages": recent,
	})
}

// HandleMetrics returns the dashboard panel snapshot.
func (h *Handler) HandleMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.Snapshot())
}

// HandleSustainability returns the sustainability panel snapshot.
func (h *Handler) HandleSustainability(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sustainability.Snapshot())
}

// HandleAlerts returns the alert ring, newest first.
func (h *Handler) HandleAlerts(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": h.ring.List(),
	})
}

// HandleDismissAlert removes one alert. Dismissing an unknown id is a no-op
// and still returns 204, matching the ring's idempotent contract.
func (h *Handler) HandleDismissAlert(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}
	h.ring.Dismiss(id)
	return c.NoContent(http.StatusNoContent)
}
