package panels

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/inventory-orchestrator/console/internal/alerts"
	"github.com/inventory-orchestrator/console/internal/models"
)

// RecentResultCap bounds the list of retained optimization results.
const RecentResultCap = 25

type demandSpikePayload struct {
	SKUID      string  `json:"sku_id"`
	Multiplier float64 `json:"multiplier"`
}

type supplierDelayPayload struct {
	SupplierID string `json:"supplier_id"`
	DelayDays  int    `json:"delay_days"`
}

type reorderCreatedPayload struct {
	Message string `json:"message"`
}

// Dashboard projects the system-wide metric snapshots and optimization
// activity onto the main panel, and synthesizes alerts for notable events.
type Dashboard struct {
	mu       sync.RWMutex
	snapshot models.DashboardSnapshot
	ring     *alerts.Ring
}

// NewDashboard creates the dashboard panel. ring may be nil (tests).
func NewDashboard(ring *alerts.Ring) *Dashboard {
	return &Dashboard{ring: ring}
}

// Name implements feed.Subscriber.
func (p *Dashboard) Name() string { return "dashboard" }

// Apply merges metric and optimization events into panel state.
func (p *Dashboard) Apply(ev models.Event) {
	switch ev.Kind {
	case models.KindSystemMetrics:
		p.applyMetrics(ev)
	case models.KindOptimizationResult:
		p.applyResult(ev)
	case models.KindOptimizationTriggered:
		p.mu.Lock()
		p.snapshot.OptimizationRuns++
		p.mu.Unlock()
		p.push(models.SeverityInfo, "Optimization cycle initiated")
	case models.KindReorderCreated:
		p.applyReorder(ev)
	case models.KindDemandSpike, models.KindDemandSpikeSimulation:
		p.applySpike(ev)
	case models.KindSupplierDelay, models.KindDelaySimulation:
		p.applyDelay(ev)
	}
}

func (p *Dashboard) applyMetrics(ev models.Event) {
	var m models.SystemMetrics
	if err := json.Unmarshal(ev.Payload, &m); err != nil {
		return
	}

	p.mu.Lock()
	p.snapshot.Metrics = m
	p.snapshot.MetricsUpdatedAt = ev.ReceivedAt
	p.mu.Unlock()
}

func (p *Dashboard) applyResult(ev models.Event) {
	var res models.OptimizationResult
	if err := json.Unmarshal(ev.Payload, &res); err != nil {
		return
	}

	p.mu.Lock()
	p.snapshot.RecentResults = append([]models.OptimizationResult{res}, p.snapshot.RecentResults...)
	if len(p.snapshot.RecentResults) > RecentResultCap {
		p.snapshot.RecentResults = p.snapshot.RecentResults[:RecentResultCap]
	}
	p.mu.Unlock()

	if res.SKUID != "" {
		p.push(models.SeveritySuccess,
			fmt.Sprintf("Optimization: %s %s x%d", res.RecommendedAction, res.SKUID, res.RecommendedQuantity))
	}
}

func (p *Dashboard) applyReorder(ev models.Event) {
	p.mu.Lock()
	p.snapshot.ReordersObserved++
	p.mu.Unlock()

	var payload reorderCreatedPayload
	if err := json.Unmarshal(ev.Payload, &payload); err == nil && payload.Message != "" {
		p.push(models.SeveritySuccess, payload.Message)
		return
	}
	p.push(models.SeveritySuccess, "Reorder created")
}

func (p *Dashboard) applySpike(ev models.Event) {
	p.mu.Lock()
	p.snapshot.DemandSpikesSeen++
	p.mu.Unlock()

	var payload demandSpikePayload
	if err := json.Unmarshal(ev.Payload, &payload); err == nil && payload.SKUID != "" {
		p.push(models.SeverityWarning,
			fmt.Sprintf("Demand spike on %s (x%.1f)", payload.SKUID, payload.Multiplier))
		return
	}
	p.push(models.SeverityWarning, "Demand spike detected")
}

func (p *Dashboard) applyDelay(ev models.Event) {
	p.mu.Lock()
	p.snapshot.SupplierDelaysSeen++
	p.mu.Unlock()

	var payload supplierDelayPayload
	if err := json.Unmarshal(ev.Payload, &payload); err == nil && payload.SupplierID != "" {
		p.push(models.SeverityWarning,
			fmt.Sprintf("Supplier %s delayed by %d days", payload.SupplierID, payload.DelayDays))
		return
	}
	p.push(models.SeverityWarning, "Supplier delay reported")
}

func (p *Dashboard) push(severity models.Severity, message string) {
	if p.ring != nil {
		p.ring.Push(severity, message)
	}
}

// Snapshot returns a copy of the dashboard state.
func (p *Dashboard) Snapshot() models.DashboardSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := p.snapshot
	out.RecentResults = make([]models.OptimizationResult, len(p.snapshot.RecentResults))
	copy(out.RecentResults, p.snapshot.RecentResults)
	if out.RecentResults == nil {
		out.RecentResults = []models.OptimizationResult{}
	}
	return out
}

// MetricsAge reports how stale the current metrics snapshot is. Zero when no
// snapshot has arrived yet.
func (p *Dashboard) MetricsAge(now time.Time) time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.snapshot.MetricsUpdatedAt.IsZero() {
		return 0
	}
	return now.Sub(p.snapshot.MetricsUpdatedAt)
}
