package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"outreach/internal/adapters/storage"
	"outreach/internal/adapters/storage/searchq"
	domain "outreach/internal/domain/event"
)

const columns = "id, name, location, start_at, end_at, registration_deadline, description"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     storage.SQLDB
	search *searchq.Builder
}

// NewSQLiteStore creates a new event Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	b := searchq.New("name", "location", "description").
		WithRaw("strftime('%m/%d/%Y', start_at)")
	return &SQLiteStore{db: db, search: b}
}

func scanRow(scan func(dest ...any) error) (domain.Occurrence, error) {
	var entity domain.Occurrence
	var location, startAt, endAt, deadline sql.NullString
	err := scan(&entity.ID, &entity.Name, &location, &startAt, &endAt, &deadline, &entity.Description)
	if err != nil {
		return domain.Occurrence{}, err
	}
	entity.Location = location.String
	entity.StartAt = parseTime(startAt)
	entity.EndAt = parseTime(endAt)
	entity.RegistrationDeadline = parseTime(deadline)
	return entity, nil
}

// GetByID retrieves an Occurrence by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Occurrence, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM event_occurrence WHERE id = ?", id)
	entity, err := scanRow(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Occurrence{}, fmt.Errorf("event not found: %w", err)
	}
	return entity, err
}

// Save persists an Occurrence to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Occurrence) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO event_occurrence (id, name, location, start_at, end_at, registration_deadline, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, location=excluded.location, start_at=excluded.start_at,
			end_at=excluded.end_at, registration_deadline=excluded.registration_deadline,
			description=excluded.description`

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Location,
		formatTime(entity.StartAt),
		formatTime(entity.EndAt),
		formatTime(entity.RegistrationDeadline),
		entity.Description,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an Occurrence from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM event_occurrence WHERE id = ?", id)
	return err
}

// List retrieves occurrences matching the search query, newest start first.
// PRE: none (empty search returns all rows)
// POST: Returns matching entities ordered by start_at desc
func (s *SQLiteStore) List(ctx context.Context, search string) ([]domain.Occurrence, error) {
	pred := s.search.Build(search)
	query := "SELECT " + columns + " FROM event_occurrence WHERE " + pred.Clause + " ORDER BY start_at DESC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, pred.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Occurrence
	for rows.Next() {
		entity, err := scanRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// ListTemplates retrieves the reusable event names, alphabetically.
func (s *SQLiteStore) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM event_template ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Template
	for rows.Next() {
		var t domain.Template
		if err := rows.Scan(&t.Name); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

// ListLocations retrieves the location capacity lookup, alphabetically.
func (s *SQLiteStore) ListLocations(ctx context.Context) ([]domain.LocationCapacity, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT location, capacity FROM location_capacity ORDER BY location ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.LocationCapacity
	for rows.Next() {
		var lc domain.LocationCapacity
		if err := rows.Scan(&lc.Location, &lc.Capacity); err != nil {
			return nil, err
		}
		results = append(results, lc)
	}
	return results, rows.Err()
}

func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
