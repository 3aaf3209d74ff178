// Package panels contains the subscriber views that project the shared
// event log into panel-local display state. Panels never mutate the log;
// they read event payloads and derive their own state (one-way data flow).
package panels

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/inventory-orchestrator/console/internal/alerts"
	"github.com/inventory-orchestrator/console/internal/models"
)

// LowStockThreshold is the stock level at or below which the inventory panel
// raises a warning alert.
const LowStockThreshold = 10

// inventoryUpdate is the wire shape of an inventory_update payload.
// Unexpected extra fields are silently ignored; missing fields merge as
// zero values.
type inventoryUpdate struct {
	SKUID          string `json:"sku_id"`
	WarehouseID    string `json:"warehouse_id"`
	CurrentStock   int    `json:"current_stock"`
	ReservedStock  int    `json:"reserved_stock"`
	AvailableStock int    `json:"available_stock"`
}

// Inventory tracks per-SKU stock across warehouses.
//
// Missing-entity policy: an update for an unknown SKU creates a fresh
// partial record. This is deliberately asymmetric with the agent panel,
// which drops unknown senders; each policy follows the entity type's
// upstream contract.
type Inventory struct {
	mu   sync.RWMutex
	skus map[string]*models.SKURecord
	ring *alerts.Ring
}

// NewInventory creates the inventory panel. ring may be nil when alert
// synthesis is not wanted (tests).
func NewInventory(ring *alerts.Ring) *Inventory {
	return &Inventory{
		skus: make(map[string]*models.SKURecord),
		ring: ring,
	}
}

// Name implements feed.Subscriber.
func (p *Inventory) Name() string { return "inventory" }

// Apply merges inventory_update events into panel state. All other kinds
// are ignored.
func (p *Inventory) Apply(ev models.Event) {
	if ev.Kind != models.KindInventoryUpdate {
		return
	}

	var upd inventoryUpdate
	if err := json.Unmarshal(ev.Payload, &upd); err != nil {
		return
	}
	if upd.SKUID == "" || upd.WarehouseID == "" {
		return
	}

	p.mu.Lock()
	rec, ok := p.skus[upd.SKUID]
	if !ok {
		rec = models.NewSKURecord(upd.SKUID)
		p.skus[upd.SKUID] = rec
	}
	rec.CurrentStock[upd.WarehouseID] = upd.CurrentStock
	if upd.ReservedStock != 0 {
		rec.ReservedStock[upd.WarehouseID] = upd.ReservedStock
	}
	available := upd.AvailableStock
	if available == 0 {
		available = upd.CurrentStock - upd.ReservedStock
	}
	rec.AvailableStock[upd.WarehouseID] = available
	rec.LastUpdated = ev.ReceivedAt
	p.mu.Unlock()

	if p.ring != nil && upd.CurrentStock <= LowStockThreshold {
		p.ring.Push(models.SeverityWarning,
			fmt.Sprintf("Low stock: %s at %s (%d units)", upd.SKUID, upd.WarehouseID, upd.CurrentStock))
	}
}

// Get returns a copy of one SKU's record.
func (p *Inventory) Get(skuID string) (models.SKURecord, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	rec, ok := p.skus[skuID]
	if !ok {
		return models.SKURecord{}, false
	}
	return copySKURecord(rec), true
}

// Snapshot returns copies of all SKU records, sorted by SKU id.
func (p *Inventory) Snapshot() []models.SKURecord {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.SKURecord, 0, len(p.skus))
	for _, rec := range p.skus {
		out = append(out, copySKURecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKUID < out[j].SKUID })
	return out
}

func copySKURecord(rec *models.SKURecord) models.SKURecord {
	out := models.SKURecord{
		SKUID:          rec.SKUID,
		CurrentStock:   make(map[string]int, len(rec.CurrentStock)),
		ReservedStock:  make(map[string]int, len(rec.ReservedStock)),
		AvailableStock: make(map[string]int, len(rec.AvailableStock)),
		LastUpdated:    rec.LastUpdated,
	}
	for k, v := range rec.CurrentStock {
		out.CurrentStock[k] = v
	}
	for k, v := range rec.ReservedStock {
		out.ReservedStock[k] = v
	}
	for k, v := range rec.AvailableStock {
		out.AvailableStock[k] = v
	}
	return out
}
