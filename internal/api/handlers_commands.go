// handlers_commands.go - Operator command triggers.
//
// Commands are fire-and-forget: the feed client silently drops them while
// disconnected, and the alert pushed here describes intent, not delivery.
// There is no acknowledgement protocol upstream.
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inventory-orchestrator/console/internal/models"
)

// DemandSpikeRequest asks the orchestrator to simulate a demand spike.
type DemandSpikeRequest struct {
	SKUID         string  `json:"sku_id"`
	Multiplier    float64 `json:"multiplier"`
	DurationHours int     `json:"duration_hours"`
}

// SupplierDelayRequest asks the orchestrator to simulate a supplier delay.
type SupplierDelayRequest struct {
	SupplierID string `json:"supplier_id"`
	DelayDays  int    `json:"delay_days"`
}

// ReorderRequest asks the orchestrator to create a reorder.
type ReorderRequest struct {
	SKUID    string `json:"sku_id"`
	Quantity int    `json:"quantity"`
}

// HandleDemandSpike triggers a simulated demand spike.
func (h *Handler) HandleDemandSpike(c echo.Context) error {
	var req DemandSpikeRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid demand spike request", err)
	}
	if req.SKUID == "" {
		return NewValidationError("sku_id")
	}
	if req.Multiplier <= 0 {
		req.Multiplier = 2.0
	}
	if req.DurationHours <= 0 {
		req.DurationHours = 24
	}

	return h.dispatch(c, models.CmdSimulateDemandSpike, req,
		fmt.Sprintf("Demand spike simulation requested for %s (x%.1f)", req.SKUID, req.Multiplier))
}

// HandleSupplierDelay triggers a simulated supplier delay.
func (h *Handler) HandleSupplierDelay(c echo.Context) error {
	var req SupplierDelayRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid supplier delay request", err)
	}
	if req.SupplierID == "" {
		return NewValidationError("supplier_id")
	}
	if req.DelayDays <= 0 {
		req.DelayDays = 3
	}

	return h.dispatch(c, models.CmdSimulateDelay, req,
		fmt.Sprintf("Delay simulation requested for supplier %s (%d days)", req.SupplierID, req.DelayDays))
}

// HandleTriggerOptimization triggers a system-wide optimization cycle.
func (h *Handler) HandleTriggerOptimization(c echo.Context) error {
	return h.dispatch(c, models.CmdTriggerOptimization, map[string]interface{}{},
		"System-wide optimization cycle requested")
}

// HandleCreateReorder creates a reorder for a SKU.
func (h *Handler) HandleCreateReorder(c echo.Context) error {
	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid reorder request", err)
	}
	if req.SKUID == "" {
		return NewValidationError("sku_id")
	}
	if req.Quantity <= 0 {
		return NewValidationError("quantity")
	}

	return h.dispatch(c, models.CmdCreateReorder, req,
		fmt.Sprintf("Reorder requested for %s: %d units", req.SKUID, req.Quantity))
}

func (h *Handler) dispatch(c echo.Context, kind models.Kind, payload any, intent string) error {
	if err := h.feed.Send(kind, payload); err != nil {
		return NewInternalError("failed to send command", err)
	}

	alert := h.ring.Push(models.SeverityInfo, intent)

	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"command":    kind,
		"connection": h.feed.State(),
		"alert":      alert,
	})
}
