package model

// CheckinStatus is the outcome of a gate scan. The values double as the
// `status` field of the check-in API response.
type CheckinStatus string

const (
	// StatusCheckedIn means the registration was admitted and stamped.
	StatusCheckedIn CheckinStatus = "checked_in"
	// StatusAlready means the registration had been admitted before;
	// the scan is idempotent and changes nothing.
	StatusAlready CheckinStatus = "already"
	// StatusLocked means the capacity limit is reached and the
	// registration was not admitted.
	StatusLocked CheckinStatus = "locked"
)

// GateStats reports the live numbers behind a gate decision so the
// administrator can decide whether to raise the limit.
type GateStats struct {
	CheckedIn     int `json:"checkedIn"`
	CapacityLimit int `json:"capacityLimit"`
}

// GateAllows is the capacity gate: admit while the checked-in count is
// below the configured limit. The limit must be read fresh from the
// settings store for every evaluation; it can change mid-event.
func GateAllows(checkedIn, limit int) bool {
	return checkedIn < limit
}
