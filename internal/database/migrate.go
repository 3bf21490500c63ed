package database

import (
	"context"
	"database/sql"
)

// Migrate bootstraps the schema on startup. Statements are idempotent
// so the service can restart against an existing database. InnoDB is
// required: the check-in path relies on row-level locking of the
// capacity setting row.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS registrations (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			family_name VARCHAR(255) NOT NULL,
			primary_contact_name VARCHAR(255) NOT NULL,
			phone VARCHAR(64) NOT NULL,
			email VARCHAR(255) NULL,
			adults INT NOT NULL DEFAULT 0,
			kids INT NOT NULL DEFAULT 0,
			notes TEXT NULL,
			checked_in TINYINT(1) NOT NULL DEFAULT 0,
			checked_in_at DATETIME NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_registrations_checked_in (checked_in),
			KEY idx_registrations_family_name (family_name),
			KEY idx_registrations_phone (phone)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			` + "`key`" + ` VARCHAR(64) NOT NULL,
			value VARCHAR(255) NOT NULL,
			PRIMARY KEY (` + "`key`" + `)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		// Seed the default capacity once; the row must exist because
		// check-ins serialize on locking it.
		"INSERT IGNORE INTO app_settings (`key`, value) VALUES ('capacity_limit', '300')",
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
