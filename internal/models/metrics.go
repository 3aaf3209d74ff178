package models

import "time"

// SystemMetrics mirrors the orchestrator's system_metrics payload. Field
// names follow the wire contract (camelCase, set by the upstream simulator).
type SystemMetrics struct {
	TotalInventoryValue         float64 `json:"totalInventoryValue"`
	TotalCarbonFootprint        float64 `json:"totalCarbonFootprint"`
	ServiceLevel                float64 `json:"serviceLevel"`
	StockoutIncidents           int     `json:"stockoutIncidents"`
	OverstockIncidents          int     `json:"overstockIncidents"`
	CostEfficiency              float64 `json:"costEfficiency"`
	AgentCommunicationVolume    int     `json:"agentCommunicationVolume"`
	OptimizationCyclesCompleted int     `json:"optimizationCyclesCompleted"`
}

// OptimizationResult is a single recommendation from an optimization cycle.
// Keys are snake_case on the wire, matching the agent payloads.
type OptimizationResult struct {
	SKUID                    string  `json:"sku_id"`
	WarehouseID              string  `json:"warehouse_id"`
	RecommendedAction        string  `json:"recommended_action"`
	RecommendedQuantity      int     `json:"recommended_quantity"`
	EstimatedCost            float64 `json:"estimated_cost"`
	EstimatedCarbonFootprint float64 `json:"estimated_carbon_footprint"`
	ConfidenceScore          float64 `json:"confidence_score"`
	Reasoning                string  `json:"reasoning"`
}

// DashboardSnapshot is the dashboard panel's projected state.
type DashboardSnapshot struct {
	Metrics            SystemMetrics        `json:"metrics"`
	MetricsUpdatedAt   time.Time            `json:"metricsUpdatedAt,omitempty"`
	RecentResults      []OptimizationResult `json:"recentResults"`
	OptimizationRuns   int                  `json:"optimizationRuns"`
	ReordersObserved   int                  `json:"reordersObserved"`
	DemandSpikesSeen   int                  `json:"demandSpikesSeen"`
	SupplierDelaysSeen int                  `json:"supplierDelaysSeen"`
}
