package participant

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"outreach/internal/adapters/storage"
	"outreach/internal/adapters/storage/searchq"
	domain "outreach/internal/domain/participant"
	"outreach/internal/domain/role"
)

const columns = "id, email, password_hash, first_name, last_name, dob, phone, city, state, zip, school_or_employer, field_of_interest, role, created_at, failed_logins, locked_until"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     storage.SQLDB
	search *searchq.Builder
}

// NewSQLiteStore creates a new participant Store. The role policy supplies
// the alias tokens that let a search like "m" find managers.
func NewSQLiteStore(db storage.SQLDB, policy role.Policy) *SQLiteStore {
	b := searchq.New("email", "first_name", "last_name", "city", "state", "zip", "phone", "school_or_employer", "field_of_interest", "role").
		WithRaw("first_name || ' ' || last_name").
		WithAlias("role", role.Canonical, aliasTokens(policy)...)
	return &SQLiteStore{db: db, search: b}
}

// aliasTokens expands the policy's elevated spellings with their plural
// forms so searches like "managers" or "admins" still find managers.
// Single-character spellings ("m", "1") are not pluralized.
func aliasTokens(policy role.Policy) []string {
	tokens := policy.Tokens()
	out := make([]string, 0, len(tokens)*2)
	for _, tok := range tokens {
		out = append(out, tok)
		if len(tok) > 1 {
			out = append(out, tok+"s")
		}
	}
	return out
}

func scanRow(scan func(dest ...any) error) (domain.Participant, error) {
	var entity domain.Participant
	var dob, phone, city, state, zip, school, interest sql.NullString
	var createdAt string
	var lockedUntil sql.NullString
	err := scan(
		&entity.ID,
		&entity.Email,
		&entity.PasswordHash,
		&entity.FirstName,
		&entity.LastName,
		&dob,
		&phone,
		&city,
		&state,
		&zip,
		&school,
		&interest,
		&entity.Role,
		&createdAt,
		&entity.FailedLogins,
		&lockedUntil,
	)
	if err != nil {
		return domain.Participant{}, err
	}
	entity.DOB = dob.String
	entity.Phone = phone.String
	entity.City = city.String
	entity.State = state.String
	entity.Zip = zip.String
	entity.SchoolOrEmployer = school.String
	entity.FieldOfInterest = interest.String
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		entity.CreatedAt = t
	}
	if lockedUntil.Valid {
		if t, err := time.Parse(time.RFC3339, lockedUntil.String); err == nil {
			entity.LockedUntil = t
		}
	}
	return entity, nil
}

// GetByID retrieves a Participant by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Participant, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM participant WHERE id = ?", id)
	entity, err := scanRow(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Participant{}, fmt.Errorf("participant not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves a Participant by email (case-insensitive).
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Participant, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM participant WHERE LOWER(email) = LOWER(?)", strings.TrimSpace(email))
	entity, err := scanRow(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Participant{}, fmt.Errorf("participant not found: %w", err)
	}
	return entity, err
}

// Save persists a Participant to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Participant) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Upsert implementation
	fields := strings.Split(columns, ", ")
	placeholders := make([]string, len(fields))
	updates := make([]string, 0, len(fields)-1)
	for i, f := range fields {
		placeholders[i] = "?"
		if f != "id" {
			updates = append(updates, f+"=excluded."+f)
		}
	}
	query := fmt.Sprintf(
		"INSERT INTO participant (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		columns,
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var lockedUntil any
	if !entity.LockedUntil.IsZero() {
		lockedUntil = entity.LockedUntil.UTC().Format(time.RFC3339)
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Email,
		entity.PasswordHash,
		entity.FirstName,
		entity.LastName,
		entity.DOB,
		entity.Phone,
		entity.City,
		entity.State,
		entity.Zip,
		entity.SchoolOrEmployer,
		entity.FieldOfInterest,
		entity.Role,
		entity.CreatedAt.UTC().Format(time.RFC3339),
		entity.FailedLogins,
		lockedUntil,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Participant from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM participant WHERE id = ?", id)
	return err
}

// Count returns the total number of participants.
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM participant").Scan(&count)
	return count, err
}

// List retrieves participants matching the search query, ordered by
// creation time then id so the list is stable across requests.
// PRE: none (empty search returns all rows)
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, search string) ([]domain.Participant, error) {
	pred := s.search.Build(search)
	query := "SELECT " + columns + " FROM participant WHERE " + pred.Clause + " ORDER BY created_at ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, pred.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Participant
	for rows.Next() {
		entity, err := scanRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
