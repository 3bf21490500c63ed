package repository

import (
	"context"
	"database/sql"
	"strconv"
)

// DefaultCapacityLimit applies when the capacity row has never been
// written. Schema bootstrap seeds the row with this value.
const DefaultCapacityLimit = 300

const capacityKey = "capacity_limit"

// SettingsRepo reads and writes the app_settings key/value table. The
// only setting in use is the live admission capacity limit, which the
// administrator may change at any point during the event.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo returns a SettingsRepo bound to the given database.
func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// CapacityLimit returns the configured admission limit. Callers must
// not cache the result: the gate re-reads it on every evaluation.
func (r *SettingsRepo) CapacityLimit(ctx context.Context) (int, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM app_settings WHERE `key` = ?", capacityKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return DefaultCapacityLimit, nil
	}
	if err != nil {
		return 0, err
	}
	return parseCapacity(raw), nil
}

// SetCapacityLimit upserts the admission limit. The next gate
// evaluation sees the new value immediately.
func (r *SettingsRepo) SetCapacityLimit(ctx context.Context, n int) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO app_settings (`key`, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)",
		capacityKey, strconv.Itoa(n),
	)
	return err
}

// parseCapacity falls back to the default when the stored value is not
// a positive integer.
func parseCapacity(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultCapacityLimit
	}
	return n
}
