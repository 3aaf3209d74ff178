package panels

import (
	"encoding/json"
	"sync"

	"github.com/inventory-orchestrator/console/internal/models"
)

// TrendCap bounds the carbon trend series.
const TrendCap = 100

// sustainabilityUpdate is the wire shape of a sustainability_update payload.
type sustainabilityUpdate struct {
	TotalCarbonFootprint float64 `json:"total_carbon_footprint"`
	CarbonSavings        float64 `json:"carbon_savings"`
	ShipmentsOptimized   int     `json:"shipments_optimized"`
}

// Sustainability tracks carbon figures from dedicated sustainability updates
// and from the carbon component of system metric snapshots.
type Sustainability struct {
	mu    sync.RWMutex
	state models.SustainabilitySnapshot
}

// NewSustainability creates the sustainability panel.
func NewSustainability() *Sustainability {
	return &Sustainability{}
}

// Name implements feed.Subscriber.
func (p *Sustainability) Name() string { return "sustainability" }

// Apply merges sustainability_update and system_metrics events.
func (p *Sustainability) Apply(ev models.Event) {
	switch ev.Kind {
	case models.KindSustainabilityUpdate:
		var upd sustainabilityUpdate
		if err := json.Unmarshal(ev.Payload, &upd); err != nil {
			return
		}

		p.mu.Lock()
		if upd.TotalCarbonFootprint > 0 {
			p.state.TotalCarbonKg = upd.TotalCarbonFootprint
			p.appendPointLocked(models.CarbonPoint{Timestamp: ev.ReceivedAt, CarbonKg: upd.TotalCarbonFootprint})
		}
		p.state.CarbonSavingsKg += upd.CarbonSavings
		p.state.ShipmentsOptimized += upd.ShipmentsOptimized
		p.state.UpdatedAt = ev.ReceivedAt
		p.mu.Unlock()

	case models.KindSystemMetrics:
		var m models.SystemMetrics
		if err := json.Unmarshal(ev.Payload, &m); err != nil {
			return
		}
		if m.TotalCarbonFootprint <= 0 {
			return
		}

		p.mu.Lock()
		p.state.TotalCarbonKg = m.TotalCarbonFootprint
		p.state.UpdatedAt = ev.ReceivedAt
		p.appendPointLocked(models.CarbonPoint{Timestamp: ev.ReceivedAt, CarbonKg: m.TotalCarbonFootprint})
		p.mu.Unlock()
	}
}

func (p *Sustainability) appendPointLocked(pt models.CarbonPoint) {
	p.state.Trend = append(p.state.Trend, pt)
	if len(p.state.Trend) > TrendCap {
		p.state.Trend = p.state.Trend[len(p.state.Trend)-TrendCap:]
	}
}

// Snapshot returns a copy of the sustainability state.
func (p *Sustainability) Snapshot() models.SustainabilitySnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := p.state
	out.Trend = make([]models.CarbonPoint, len(p.state.Trend))
	copy(out.Trend, p.state.Trend)
	return out
}
