package storage

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations is the ordered list of schema migrations. Version N is
// migrations[N-1]. Append only — never edit a shipped migration.
var migrations = []func(*sql.Tx) error{
	migrateBaseline,
}

// LatestSchemaVersion returns the highest known schema version.
func LatestSchemaVersion() int {
	return len(migrations)
}

// SchemaVersion returns the current schema version, or 0 when the database
// has never been migrated.
// PRE: db is a valid database connection
// POST: returns version >= 0
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check schema_version table: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var version int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// MigrateDB applies all pending migrations inside transactions.
// PRE: db is a valid database connection
// POST: schema is at LatestSchemaVersion; already-applied migrations are skipped
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)"); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for v := current + 1; v <= len(migrations); v++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", v, err)
		}
		if err := migrations[v-1](tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", v, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", v, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", v, err)
		}
	}
	return nil
}

// migrateBaseline creates the full baseline schema and seeds the NPS bucket
// lookup rows.
func migrateBaseline(tx *sql.Tx) error {
	schema := `
	CREATE TABLE IF NOT EXISTS participant (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		dob TEXT,
		phone TEXT,
		city TEXT,
		state TEXT,
		zip TEXT,
		school_or_employer TEXT,
		field_of_interest TEXT,
		role TEXT NOT NULL DEFAULT 'common',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS donation (
		participant_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		donated_at TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		PRIMARY KEY (participant_id, number),
		FOREIGN KEY (participant_id) REFERENCES participant(id)
	);

	CREATE TABLE IF NOT EXISTS event_occurrence (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT,
		start_at TEXT,
		end_at TEXT,
		registration_deadline TEXT,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS event_template (
		name TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS location_capacity (
		location TEXT PRIMARY KEY,
		capacity INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS survey_response (
		participant_id TEXT NOT NULL,
		event_id TEXT NOT NULL,
		submitted_at TEXT,
		satisfaction INTEGER NOT NULL,
		usefulness INTEGER NOT NULL,
		instructor INTEGER NOT NULL,
		recommendation INTEGER NOT NULL,
		comments TEXT,
		PRIMARY KEY (participant_id, event_id),
		FOREIGN KEY (participant_id) REFERENCES participant(id),
		FOREIGN KEY (event_id) REFERENCES event_occurrence(id)
	);

	CREATE TABLE IF NOT EXISTS nps_bucket (
		recommendation INTEGER PRIMARY KEY,
		bucket TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS milestone (
		id TEXT PRIMARY KEY,
		participant_id TEXT NOT NULL,
		title TEXT NOT NULL,
		achieved_at TEXT,
		FOREIGN KEY (participant_id) REFERENCES participant(id)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_milestone_natural_key
		ON milestone(participant_id, title);
	`
	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("failed to create baseline schema: %w", err)
	}

	// NPS buckets: 9-10 promoter, 7-8 passive, 1-6 detractor.
	for score := 1; score <= 10; score++ {
		bucket := "Detractor"
		switch {
		case score >= 9:
			bucket = "Promoter"
		case score >= 7:
			bucket = "Passive"
		}
		if _, err := tx.Exec("INSERT OR IGNORE INTO nps_bucket (recommendation, bucket) VALUES (?, ?)", score, bucket); err != nil {
			return fmt.Errorf("failed to seed nps_bucket: %w", err)
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a SQLite unique-constraint failure.
// Used to distinguish key conflicts (duplicate email, duplicate milestone
// title, donation number race) from generic store failure.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
