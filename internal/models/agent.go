package models

import "time"

// Agent keys known to the console. The agent panel only tracks these four;
// messages from any other sender are dropped without a state change.
const (
	AgentDemand      = "demand"
	AgentSupply      = "supply"
	AgentLogistics   = "logistics"
	AgentNegotiation = "negotiation"
)

// KnownAgents lists the fixed agent keys in display order.
var KnownAgents = []string{AgentDemand, AgentSupply, AgentLogistics, AgentNegotiation}

// AgentStatus is the agent panel's view of one agent.
type AgentStatus struct {
	Key              string    `json:"key"`
	Name             string    `json:"name"`
	Status           string    `json:"status"` // "idle" or "active"
	MessagesSent     int       `json:"messagesSent"`
	MessagesReceived int       `json:"messagesReceived"`
	LastActivity     time.Time `json:"lastActivity,omitempty"`
}

// AgentMessage is a single inter-agent message as shown in the activity feed.
type AgentMessage struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	MessageType string    `json:"messageType"`
	Priority    int       `json:"priority"`
	ReceivedAt  time.Time `json:"receivedAt"`
}
