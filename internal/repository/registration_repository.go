package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/eventgate/checkin/internal/model"
)

// searchLimit caps search results so an over-broad query cannot dump
// the whole table onto the gate UI.
const searchLimit = 50

// registrationCols is the column list shared by every SELECT that scans
// a full registration row.
const registrationCols = `id, family_name, primary_contact_name, phone, email,
	adults, kids, notes, checked_in, checked_in_at, created_at`

// RegistrationRepo provides CRUD and check-in operations for the
// registrations table. All timestamps are stored and compared in UTC.
// The check-in state transition is executed inside a single transaction
// with row-level locking so that concurrent scans at the gate cannot
// race past the capacity limit (see CheckIn).
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a RegistrationRepo bound to the given database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// ValidateNewRegistration trims text input in place, rejects missing
// required fields and normalizes the attendee counts. Family name,
// contact name and phone must be non-empty after trimming; negative
// counts collapse to zero.
func ValidateNewRegistration(n *model.NewRegistration) error {
	n.FamilyName = strings.TrimSpace(n.FamilyName)
	n.PrimaryContactName = strings.TrimSpace(n.PrimaryContactName)
	n.Phone = strings.TrimSpace(n.Phone)
	n.Email = strings.TrimSpace(n.Email)
	n.Notes = strings.TrimSpace(n.Notes)
	if n.FamilyName == "" {
		return fmt.Errorf("%w: family_name is required", ErrValidation)
	}
	if n.PrimaryContactName == "" {
		return fmt.Errorf("%w: primary_contact_name is required", ErrValidation)
	}
	if n.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if n.Adults < 0 {
		n.Adults = 0
	}
	if n.Kids < 0 {
		n.Kids = 0
	}
	return nil
}

// Create validates the input and inserts a new registration with
// checked_in = false. It returns the newly assigned identifier.
func (r *RegistrationRepo) Create(ctx context.Context, n model.NewRegistration) (uint64, error) {
	if err := ValidateNewRegistration(&n); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO registrations
		   (family_name, primary_contact_name, phone, email, adults, kids, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.FamilyName, n.PrimaryContactName, n.Phone,
		nullable(n.Email), n.Adults, n.Kids, nullable(n.Notes),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single registration or ErrRegistrationNotFound.
func (r *RegistrationRepo) GetByID(ctx context.Context, id uint64) (*model.Registration, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+registrationCols+` FROM registrations WHERE id = ?`, id)
	reg, err := scanRegistration(row)
	if err == sql.ErrNoRows {
		return nil, ErrRegistrationNotFound
	}
	return reg, err
}

// Search matches the query case-insensitively as a substring of the
// family name, contact name, phone or email. When the query parses as a
// positive integer the exact id is matched as well, so the gate staff
// can type a registration number directly. Results come newest first,
// capped at searchLimit. The caller guards against empty queries.
func (r *RegistrationRepo) Search(ctx context.Context, query string) ([]model.Registration, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var id uint64
	if n, err := strconv.ParseUint(query, 10, 64); err == nil && n > 0 {
		id = n
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+registrationCols+`
		 FROM registrations
		 WHERE LOWER(family_name) LIKE ?
		    OR LOWER(primary_contact_name) LIKE ?
		    OR LOWER(phone) LIKE ?
		    OR LOWER(COALESCE(email, '')) LIKE ?
		    OR (? > 0 AND id = ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		pattern, pattern, pattern, pattern, id, id, searchLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	results := make([]model.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// CheckIn runs the capacity-gated state transition for one scanned
// registration in a single transaction:
//
//  1. lock the capacity setting row (SELECT ... FOR UPDATE) — every
//     concurrent check-in serializes on this lock, which closes the
//     read-count-then-write race at the capacity boundary;
//  2. lock and load the registration row;
//  3. already checked in  -> StatusAlready, no mutation;
//     count >= limit      -> StatusLocked, no mutation, stats reported;
//     otherwise           -> set the flag, stamp UTC now, StatusCheckedIn.
//
// A registration is therefore admitted at most once and never beyond
// the limit, regardless of how many gate scans run concurrently.
func (r *RegistrationRepo) CheckIn(ctx context.Context, id uint64) (*model.Registration, model.CheckinStatus, model.GateStats, error) {
	var none model.GateStats
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", none, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	limit, err := capacityLimitForUpdate(ctx, tx)
	if err != nil {
		return nil, "", none, err
	}

	row := tx.QueryRowContext(ctx,
		`SELECT `+registrationCols+` FROM registrations WHERE id = ? FOR UPDATE`, id)
	reg, err := scanRegistration(row)
	if err == sql.ErrNoRows {
		return nil, "", none, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, "", none, err
	}

	if reg.CheckedIn {
		// Idempotent branch: nothing to write, release the locks.
		if err := tx.Commit(); err != nil {
			return nil, "", none, err
		}
		committed = true
		return reg, model.StatusAlready, none, nil
	}

	var checkedIn int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE checked_in = 1`,
	).Scan(&checkedIn); err != nil {
		return nil, "", none, err
	}

	if !model.GateAllows(checkedIn, limit) {
		if err := tx.Commit(); err != nil {
			return nil, "", none, err
		}
		committed = true
		return reg, model.StatusLocked, model.GateStats{CheckedIn: checkedIn, CapacityLimit: limit}, nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE registrations SET checked_in = 1, checked_in_at = UTC_TIMESTAMP() WHERE id = ?`, id,
	); err != nil {
		return nil, "", none, err
	}
	row = tx.QueryRowContext(ctx,
		`SELECT `+registrationCols+` FROM registrations WHERE id = ?`, id)
	reg, err = scanRegistration(row)
	if err != nil {
		return nil, "", none, err
	}
	if err := tx.Commit(); err != nil {
		return nil, "", none, err
	}
	committed = true
	return reg, model.StatusCheckedIn, model.GateStats{CheckedIn: checkedIn + 1, CapacityLimit: limit}, nil
}

// UndoCheckin clears the checked-in flag and timestamp unconditionally.
// It is the administrator's correction path and bypasses the gate.
// Undoing a registration that was never checked in is a no-op success.
func (r *RegistrationRepo) UndoCheckin(ctx context.Context, id uint64) (*model.Registration, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE registrations SET checked_in = 0, checked_in_at = NULL WHERE id = ?`, id,
	); err != nil {
		return nil, err
	}
	// Rows-affected is 0 both for a missing id and for an untouched
	// row, so existence is decided by the follow-up read.
	return r.GetByID(ctx, id)
}

// CountCheckedIn returns the number of admitted registrations.
func (r *RegistrationRepo) CountCheckedIn(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE checked_in = 1`).Scan(&n)
	return n, err
}

// CountTotal returns the total number of registrations.
func (r *RegistrationRepo) CountTotal(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n)
	return n, err
}

// capacityLimitForUpdate reads the capacity limit inside the check-in
// transaction with an exclusive lock on the setting row. The lock is
// what serializes concurrent gate decisions.
func capacityLimitForUpdate(ctx context.Context, tx *sql.Tx) (int, error) {
	var raw string
	err := tx.QueryRowContext(ctx,
		"SELECT value FROM app_settings WHERE `key` = ? FOR UPDATE", capacityKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		// Bootstrap seeds the row; tolerate a missing one anyway.
		return DefaultCapacityLimit, nil
	}
	if err != nil {
		return 0, err
	}
	return parseCapacity(raw), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRegistration maps one row of registrationCols onto the model,
// converting nullable columns to pointers.
func scanRegistration(row rowScanner) (*model.Registration, error) {
	var (
		reg         model.Registration
		email       sql.NullString
		notes       sql.NullString
		checkedInAt sql.NullTime
	)
	if err := row.Scan(
		&reg.ID, &reg.FamilyName, &reg.PrimaryContactName, &reg.Phone, &email,
		&reg.Adults, &reg.Kids, &notes, &reg.CheckedIn, &checkedInAt, &reg.CreatedAt,
	); err != nil {
		return nil, err
	}
	if email.Valid {
		v := email.String
		reg.Email = &v
	}
	if notes.Valid {
		v := notes.String
		reg.Notes = &v
	}
	if checkedInAt.Valid {
		t := checkedInAt.Time.UTC()
		reg.CheckedInAt = &t
	}
	return &reg, nil
}

// nullable maps an empty trimmed string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
