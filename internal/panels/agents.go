package panels

import (
	"encoding/json"
	"sync"

	"github.com/inventory-orchestrator/console/internal/models"
)

// RecentMessageCap bounds the agent activity feed.
const RecentMessageCap = 20

// agentMessage is the wire shape of an agent_message payload.
type agentMessage struct {
	FromAgent   string `json:"from_agent"`
	ToAgent     string `json:"to_agent"`
	MessageType string `json:"message_type"`
	Priority    int    `json:"priority"`
}

// Agents tracks the four known orchestrator agents.
//
// Missing-entity policy: messages whose from_agent is not one of the known
// keys are dropped with no state change at all. Unknown senders do not get
// records created for them.
type Agents struct {
	mu     sync.RWMutex
	agents map[string]*models.AgentStatus
	recent []models.AgentMessage
}

// NewAgents creates the agent panel with the four known agents in idle state.
func NewAgents() *Agents {
	agents := make(map[string]*models.AgentStatus, len(models.KnownAgents))
	names := map[string]string{
		models.AgentDemand:      "Demand Forecasting",
		models.AgentSupply:      "Supply Planning",
		models.AgentLogistics:   "Logistics Routing",
		models.AgentNegotiation: "Supplier Negotiation",
	}
	for _, key := range models.KnownAgents {
		agents[key] = &models.AgentStatus{
			Key:    key,
			Name:   names[key],
			Status: "idle",
		}
	}
	return &Agents{agents: agents}
}

// Name implements feed.Subscriber.
func (p *Agents) Name() string { return "agents" }

// Apply merges agent_message events into panel state.
func (p *Agents) Apply(ev models.Event) {
	if ev.Kind != models.KindAgentMessage {
		return
	}

	var msg agentMessage
	if err := json.Unmarshal(ev.Payload, &msg); err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	sender, ok := p.agents[msg.FromAgent]
	if !ok {
		return
	}

	sender.Status = "active"
	sender.MessagesSent++
	sender.LastActivity = ev.ReceivedAt

	if receiver, ok := p.agents[msg.ToAgent]; ok {
		receiver.MessagesReceived++
	}

	p.recent = append([]models.AgentMessage{{
		From:        msg.FromAgent,
		To:          msg.ToAgent,
		MessageType: msg.MessageType,
		Priority:    msg.Priority,
		ReceivedAt:  ev.ReceivedAt,
	}}, p.recent...)
	if len(p.recent) > RecentMessageCap {
		p.recent = p.recent[:RecentMessageCap]
	}
}

// Snapshot returns copies of the agent records in display order plus the
// recent message feed, newest first.
func (p *Agents) Snapshot() ([]models.AgentStatus, []models.AgentMessage) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	agents := make([]models.AgentStatus, 0, len(models.KnownAgents))
	for _, key := range models.KnownAgents {
		agents = append(agents, *p.agents[key])
	}

	recent := make([]models.AgentMessage, len(p.recent))
	copy(recent, p.recent)
	return agents, recent
}
