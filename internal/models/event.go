// Package models contains domain types for the Inventory Orchestrator console.
package models

import (
	"encoding/json"
	"time"
)

// Kind identifies a named event on the realtime feed. The set is open:
// unknown kinds are ingested and simply matched by no panel.
type Kind string

// Inbound event kinds pushed by the orchestrator.
const (
	KindInventoryUpdate      Kind = "inventory_update"
	KindAgentMessage         Kind = "agent_message"
	KindOptimizationResult   Kind = "optimization_result"
	KindSystemMetrics        Kind = "system_metrics"
	KindSustainabilityUpdate Kind = "sustainability_update"

	// Broadcast kinds emitted by the orchestrator's simulation loop.
	KindDemandSpike           Kind = "demand_spike"
	KindSupplierDelay         Kind = "supplier_delay"
	KindDemandSpikeSimulation Kind = "demand_spike_simulation"
	KindDelaySimulation       Kind = "delay_simulation"
	KindOptimizationTriggered Kind = "optimization_triggered"
	KindReorderCreated        Kind = "reorder_created"
)

// Outbound command kinds sent back to the orchestrator.
const (
	CmdSimulateDemandSpike Kind = "simulate_demand_spike"
	CmdSimulateDelay       Kind = "simulate_delay"
	CmdTriggerOptimization Kind = "trigger_optimization"
	CmdCreateReorder       Kind = "create_reorder"
)

// Event is a single inbound message from the feed. Payload shape is a
// contract by convention with the orchestrator and is not validated here.
// Events are immutable once appended to the log.
type Event struct {
	Seq        uint64          `json:"seq" msgpack:"seq"`
	Kind       Kind            `json:"kind" msgpack:"kind"`
	Payload    json.RawMessage `json:"payload" msgpack:"payload"`
	ReceivedAt time.Time       `json:"receivedAt" msgpack:"receivedAt"`
}

// ConnectionState describes the upstream feed connection.
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnected    ConnectionState = "connected"
)
