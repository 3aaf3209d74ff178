// interfaces.go - Handler dependency interfaces, kept small for mocking in tests
package api

import "github.com/inventory-orchestrator/console/internal/models"

// Feed is the slice of the feed client the handlers need: observable
// connection state and fire-and-forget command dispatch.
type Feed interface {
	State() models.ConnectionState
	Send(kind models.Kind, payload any) error
}

// EventSource exposes read access to the shared event log.
type EventSource interface {
	Tail(n int) []models.Event
	Len() int
}
