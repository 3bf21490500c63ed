package model

import "time"

// Registration is one family's signup for the event, as stored in the
// `registrations` table. A registration is created once through the
// public form and afterwards mutated only by check-in and undo-check-in;
// rows are never deleted.
//
// Invariant: CheckedInAt is non-nil exactly when CheckedIn is true.
//
// Fields:
//  ID                 – primary key, assigned at creation.
//  FamilyName         – family name printed at the gate (required).
//  PrimaryContactName – contact person for the registration (required).
//  Phone              – contact phone (required).
//  Email              – optional contact email.
//  Adults             – number of adults attending (>= 0).
//  Kids               – number of kids attending (>= 0).
//  Notes              – optional free-text notes.
//  CheckedIn          – whether the family has been admitted.
//  CheckedInAt        – admission timestamp (nil until admitted).
//  CreatedAt          – creation timestamp.
type Registration struct {
	ID                 uint64     `json:"id"`
	FamilyName         string     `json:"family_name"`
	PrimaryContactName string     `json:"primary_contact_name"`
	Phone              string     `json:"phone"`
	Email              *string    `json:"email,omitempty"`
	Adults             int        `json:"adults"`
	Kids               int        `json:"kids"`
	Notes              *string    `json:"notes,omitempty"`
	CheckedIn          bool       `json:"checked_in"`
	CheckedInAt        *time.Time `json:"checked_in_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// NewRegistration carries the form input for creating a registration.
// Required fields are validated and counts normalized by the repository
// before insertion.
type NewRegistration struct {
	FamilyName         string
	PrimaryContactName string
	Phone              string
	Email              string
	Adults             int
	Kids               int
	Notes              string
}
