package survey

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"outreach/internal/adapters/storage"
	"outreach/internal/adapters/storage/searchq"
	domain "outreach/internal/domain/survey"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     storage.SQLDB
	search *searchq.Builder
}

// NewSQLiteStore creates a new survey Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	b := searchq.New("p.email", "p.first_name", "p.last_name", "e.name", "e.location", "r.comments", "b.bucket").
		WithRaw("p.first_name || ' ' || p.last_name")
	return &SQLiteStore{db: db, search: b}
}

// GetByKey retrieves a Response by its composite key.
// PRE: participantID and eventID are non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByKey(ctx context.Context, participantID, eventID string) (domain.Response, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT participant_id, event_id, submitted_at, satisfaction, usefulness, instructor, recommendation, comments
		FROM survey_response WHERE participant_id = ? AND event_id = ?`,
		participantID, eventID)

	var entity domain.Response
	var submittedAt, comments sql.NullString
	err := row.Scan(&entity.ParticipantID, &entity.EventID, &submittedAt,
		&entity.Satisfaction, &entity.Usefulness, &entity.Instructor, &entity.Recommendation, &comments)
	if err == sql.ErrNoRows {
		return domain.Response{}, fmt.Errorf("survey response not found: %w", err)
	}
	if err != nil {
		return domain.Response{}, err
	}
	entity.Comments = comments.String
	if submittedAt.Valid {
		if t, err := time.Parse(time.RFC3339, submittedAt.String); err == nil {
			entity.SubmittedAt = t
		}
	}
	return entity, nil
}

// Save persists a Response to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update on the composite key)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Response) error {
	var submittedAt any
	if !entity.SubmittedAt.IsZero() {
		submittedAt = entity.SubmittedAt.UTC().Format(time.RFC3339)
	}

	query := `INSERT INTO survey_response (participant_id, event_id, submitted_at, satisfaction, usefulness, instructor, recommendation, comments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(participant_id, event_id) DO UPDATE SET
			submitted_at=excluded.submitted_at, satisfaction=excluded.satisfaction,
			usefulness=excluded.usefulness, instructor=excluded.instructor,
			recommendation=excluded.recommendation, comments=excluded.comments`

	_, err := s.db.ExecContext(ctx, query,
		entity.ParticipantID, entity.EventID, submittedAt,
		entity.Satisfaction, entity.Usefulness, entity.Instructor, entity.Recommendation,
		entity.Comments)
	return err
}

// Delete removes a Response by its composite key.
// PRE: participantID and eventID are non-empty
// POST: Row with the given key is removed
func (s *SQLiteStore) Delete(ctx context.Context, participantID, eventID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM survey_response WHERE participant_id = ? AND event_id = ?",
		participantID, eventID)
	return err
}

// List retrieves responses joined with names and NPS buckets, newest first.
// PRE: none (empty search returns all rows)
// POST: Returns matching rows ordered by submitted_at desc
func (s *SQLiteStore) List(ctx context.Context, search string) ([]ListRow, error) {
	pred := s.search.Build(search)
	query := `SELECT r.participant_id, r.event_id, r.submitted_at, r.satisfaction, r.usefulness,
			r.instructor, r.recommendation, r.comments,
			p.first_name || ' ' || p.last_name, e.name, COALESCE(b.bucket, '')
		FROM survey_response r
		JOIN participant p ON p.id = r.participant_id
		JOIN event_occurrence e ON e.id = r.event_id
		LEFT JOIN nps_bucket b ON b.recommendation = r.recommendation
		WHERE ` + pred.Clause + `
		ORDER BY r.submitted_at DESC, r.participant_id ASC`

	rows, err := s.db.QueryContext(ctx, query, pred.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ListRow
	for rows.Next() {
		var r ListRow
		var submittedAt, comments sql.NullString
		if err := rows.Scan(&r.ParticipantID, &r.EventID, &submittedAt,
			&r.Satisfaction, &r.Usefulness, &r.Instructor, &r.Recommendation, &comments,
			&r.ParticipantName, &r.EventName, &r.NPSBucket); err != nil {
			return nil, err
		}
		r.Comments = comments.String
		if submittedAt.Valid {
			if t, err := time.Parse(time.RFC3339, submittedAt.String); err == nil {
				r.SubmittedAt = t
			}
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
