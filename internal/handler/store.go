package handler

import (
	"context"

	"github.com/eventgate/checkin/internal/model"
)

// RegistrationStore is the registration persistence surface the
// handlers depend on. The SQL implementation lives in
// internal/repository; tests substitute an in-memory fake.
type RegistrationStore interface {
	Create(ctx context.Context, n model.NewRegistration) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.Registration, error)
	Search(ctx context.Context, query string) ([]model.Registration, error)
	// CheckIn runs the capacity-gated state transition atomically and
	// reports the outcome. Implementations must guarantee that
	// concurrent calls never admit past the configured limit.
	CheckIn(ctx context.Context, id uint64) (*model.Registration, model.CheckinStatus, model.GateStats, error)
	UndoCheckin(ctx context.Context, id uint64) (*model.Registration, error)
	CountCheckedIn(ctx context.Context) (int, error)
	CountTotal(ctx context.Context) (int, error)
}

// SettingsStore reads and writes the live capacity limit.
type SettingsStore interface {
	CapacityLimit(ctx context.Context) (int, error)
	SetCapacityLimit(ctx context.Context, n int) error
}
