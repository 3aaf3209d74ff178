package models

import "time"

// Severity classifies an alert for display purposes only. There is no
// escalation between severities.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// Alert is a transient, user-dismissible notification. Alerts describe
// intent or observation, never confirmation: the feed has no acknowledgement
// protocol.
type Alert struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
