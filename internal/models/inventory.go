package models

import "time"

// SKURecord is the inventory panel's view of a single SKU across warehouses.
// Records are created lazily: the first inventory_update for an unknown SKU
// yields a partial record carrying only the fields that update delivered.
type SKURecord struct {
	SKUID          string         `json:"skuId"`
	CurrentStock   map[string]int `json:"currentStock"`
	ReservedStock  map[string]int `json:"reservedStock"`
	AvailableStock map[string]int `json:"availableStock"`
	LastUpdated    time.Time      `json:"lastUpdated"`
}

// NewSKURecord creates an empty record for a SKU.
func NewSKURecord(skuID string) *SKURecord {
	return &SKURecord{
		SKUID:          skuID,
		CurrentStock:   make(map[string]int),
		ReservedStock:  make(map[string]int),
		AvailableStock: make(map[string]int),
	}
}
