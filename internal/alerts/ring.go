// Package alerts implements the bounded most-recent-N notification surface.
package alerts

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inventory-orchestrator/console/internal/metrics"
	"github.com/inventory-orchestrator/console/internal/models"
)

// DefaultCapacity is the number of alerts retained, newest first.
const DefaultCapacity = 10

// Ring holds the most recent alerts. Pushing past capacity evicts the oldest
// entry by insertion order, regardless of severity. Evicted and dismissed
// alerts are gone: not persisted, not logged elsewhere.
type Ring struct {
	mu       sync.Mutex
	alerts   []models.Alert
	capacity int
	metrics  *metrics.Metrics
}

// NewRing creates an alert ring. Non-positive capacities fall back to
// DefaultCapacity.
func NewRing(capacity int, m *metrics.Metrics) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{
		alerts:   make([]models.Alert, 0, capacity),
		capacity: capacity,
		metrics:  m,
	}
}

// Push prepends a new alert and truncates to capacity. Identical messages
// are not deduplicated.
func (r *Ring) Push(severity models.Severity, message string) models.Alert {
	alert := models.Alert{
		ID:        uuid.New().String(),
		Severity:  severity,
		Message:   message,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.alerts = append([]models.Alert{alert}, r.alerts...)
	if len(r.alerts) > r.capacity {
		r.alerts = r.alerts[:r.capacity]
	}
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.AlertsPushed.WithLabelValues(string(severity)).Inc()
	}
	return alert
}

// Dismiss removes the alert with the given id. Unknown ids are an idempotent
// no-op.
func (r *Ring) Dismiss(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.alerts {
		if a.ID == id {
			r.alerts = append(r.alerts[:i], r.alerts[i+1:]...)
			return
		}
	}
}

// List returns a copy of the retained alerts, newest first.
func (r *Ring) List() []models.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}

// Len returns the number of retained alerts.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}
