// Package queue defines message payloads exchanged over the message broker.
package queue

// CheckinRecordedEvent is published after a registration passes the
// gate. It carries enough for downstream consumers (dashboards, audit
// logs) to work without querying the primary database.
type CheckinRecordedEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	FamilyName     string `json:"family_name"`
	Adults         int    `json:"adults"`
	Kids           int    `json:"kids"`
	CheckedIn      int    `json:"checked_in_count"`
	CapacityLimit  int    `json:"capacity_limit"`
	CheckedInAt    string `json:"checked_in_at"`
}
