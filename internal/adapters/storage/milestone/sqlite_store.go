package milestone

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"outreach/internal/adapters/storage"
	"outreach/internal/adapters/storage/searchq"
	domain "outreach/internal/domain/milestone"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     storage.SQLDB
	search *searchq.Builder
}

// NewSQLiteStore creates a new milestone Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	b := searchq.New("m.title", "p.first_name", "p.last_name").
		WithRaw("p.first_name || ' ' || p.last_name").
		WithRaw("strftime('%m/%d/%Y', m.achieved_at)")
	return &SQLiteStore{db: db, search: b}
}

// GetByNaturalKey retrieves a Milestone by (participant id, title).
// PRE: participantID and title are non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByNaturalKey(ctx context.Context, participantID, title string) (domain.Milestone, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, participant_id, title, achieved_at FROM milestone WHERE participant_id = ? AND title = ?",
		participantID, title)
	entity, err := scanRow(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Milestone{}, fmt.Errorf("milestone not found: %w", err)
	}
	return entity, err
}

// Insert persists a new Milestone.
// PRE: entity has been validated and carries a fresh surrogate ID
// POST: Row inserted, or domain.ErrTitleExists when the natural key collides
func (s *SQLiteStore) Insert(ctx context.Context, entity domain.Milestone) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO milestone (id, participant_id, title, achieved_at) VALUES (?, ?, ?, ?)",
		entity.ID, entity.ParticipantID, entity.Title, formatDate(entity.Date))
	if storage.IsUniqueViolation(err) {
		return domain.ErrTitleExists
	}
	return err
}

// ReplaceByTitle deletes the row keyed by oldTitle and inserts the
// replacement in one transaction. An absent old row is not an error: the
// replacement is inserted anyway, so a stale edit form still lands the new
// values. A collision with a different existing title returns
// domain.ErrTitleExists and leaves the old row untouched.
// PRE: replacement has been validated and carries a fresh surrogate ID
// POST: Exactly one row for (participant, replacement title) exists
func (s *SQLiteStore) ReplaceByTitle(ctx context.Context, participantID, oldTitle string, replacement domain.Milestone) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM milestone WHERE participant_id = ? AND title = ?",
		participantID, oldTitle); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO milestone (id, participant_id, title, achieved_at) VALUES (?, ?, ?, ?)",
		replacement.ID, replacement.ParticipantID, replacement.Title, formatDate(replacement.Date))
	if storage.IsUniqueViolation(err) {
		return domain.ErrTitleExists
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Milestone by its natural key.
// PRE: participantID and title are non-empty
// POST: Row with the given key is removed
func (s *SQLiteStore) Delete(ctx context.Context, participantID, title string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM milestone WHERE participant_id = ? AND title = ?",
		participantID, title)
	return err
}

// List retrieves one participant's milestones matching the search, newest first.
// PRE: participantID is non-empty
// POST: Returns matching entities ordered by achieved_at desc
func (s *SQLiteStore) List(ctx context.Context, participantID, search string) ([]domain.Milestone, error) {
	pred := s.search.Build(search)
	query := `SELECT m.id, m.participant_id, m.title, m.achieved_at
		FROM milestone m
		JOIN participant p ON p.id = m.participant_id
		WHERE m.participant_id = ? AND ` + pred.Clause + `
		ORDER BY m.achieved_at DESC, m.title ASC`
	args := append([]any{participantID}, pred.Args...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Milestone
	for rows.Next() {
		entity, err := scanRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// ListAll retrieves every milestone joined with its participant's name,
// newest first.
// PRE: none (empty search returns all rows)
// POST: Returns matching rows ordered by achieved_at desc
func (s *SQLiteStore) ListAll(ctx context.Context, search string) ([]ListRow, error) {
	pred := s.search.Build(search)
	query := `SELECT m.id, m.participant_id, m.title, m.achieved_at, p.first_name || ' ' || p.last_name
		FROM milestone m
		JOIN participant p ON p.id = m.participant_id
		WHERE ` + pred.Clause + `
		ORDER BY m.achieved_at DESC, m.title ASC`

	rows, err := s.db.QueryContext(ctx, query, pred.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ListRow
	for rows.Next() {
		var r ListRow
		var achievedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.ParticipantID, &r.Title, &achievedAt, &r.ParticipantName); err != nil {
			return nil, err
		}
		r.Date = parseDate(achievedAt)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanRow(scan func(dest ...any) error) (domain.Milestone, error) {
	var entity domain.Milestone
	var achievedAt sql.NullString
	if err := scan(&entity.ID, &entity.ParticipantID, &entity.Title, &achievedAt); err != nil {
		return domain.Milestone{}, err
	}
	entity.Date = parseDate(achievedAt)
	return entity, nil
}

const dateLayout = "2006-01-02"

func formatDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(dateLayout)
}

func parseDate(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
