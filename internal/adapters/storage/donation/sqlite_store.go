package donation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"outreach/internal/adapters/storage"
	"outreach/internal/adapters/storage/searchq"
	domain "outreach/internal/domain/donation"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     storage.SQLDB
	search *searchq.Builder
}

// NewSQLiteStore creates a new donation Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	// Search covers the donor's name, the rendered date, and the rendered
	// amount so staff can type what they see on the list screen.
	b := searchq.New("p.first_name", "p.last_name", "p.email").
		WithRaw("p.first_name || ' ' || p.last_name").
		WithRaw("strftime('%m/%d/%Y', d.donated_at)").
		WithRaw("printf('%d.%02d', d.amount_cents / 100, d.amount_cents % 100)")
	return &SQLiteStore{db: db, search: b}
}

// GetByKey retrieves a Donation by its composite key.
// PRE: participantID is non-empty, number >= 1
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByKey(ctx context.Context, participantID string, number int) (domain.Donation, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT participant_id, number, donated_at, amount_cents FROM donation WHERE participant_id = ? AND number = ?",
		participantID, number)

	var entity domain.Donation
	var donatedAt string
	err := row.Scan(&entity.ParticipantID, &entity.Number, &donatedAt, &entity.AmountCents)
	if err == sql.ErrNoRows {
		return domain.Donation{}, fmt.Errorf("donation not found: %w", err)
	}
	if err != nil {
		return domain.Donation{}, err
	}
	entity.Date = parseDate(donatedAt)
	return entity, nil
}

// NextNumber returns the next free per-participant sequence number.
// PRE: participantID is non-empty
// POST: Returns max(number)+1, starting at 1 for a first donation
func (s *SQLiteStore) NextNumber(ctx context.Context, participantID string) (int, error) {
	var next int
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(number), 0) + 1 FROM donation WHERE participant_id = ?",
		participantID).Scan(&next)
	return next, err
}

// Insert persists a new Donation. A unique violation on the composite key
// means another writer took the same number; callers retry with a fresh
// NextNumber.
// PRE: entity has been validated
// POST: Row inserted, or a unique-violation error on a number race
func (s *SQLiteStore) Insert(ctx context.Context, entity domain.Donation) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO donation (participant_id, number, donated_at, amount_cents) VALUES (?, ?, ?, ?)",
		entity.ParticipantID, entity.Number, formatDate(entity.Date), entity.AmountCents)
	return err
}

// Update rewrites the date and amount of an existing Donation in place.
// The composite key never changes on edit.
// PRE: entity has been validated and the row exists
// POST: Row updated
func (s *SQLiteStore) Update(ctx context.Context, entity domain.Donation) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE donation SET donated_at = ?, amount_cents = ? WHERE participant_id = ? AND number = ?",
		formatDate(entity.Date), entity.AmountCents, entity.ParticipantID, entity.Number)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("donation not found: %s/%d", entity.ParticipantID, entity.Number)
	}
	return nil
}

// Delete removes a Donation by its composite key.
// PRE: participantID is non-empty
// POST: Row with the given key is removed
func (s *SQLiteStore) Delete(ctx context.Context, participantID string, number int) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM donation WHERE participant_id = ? AND number = ?",
		participantID, number)
	return err
}

// List retrieves donations joined with donor names, grouped by participant
// and newest gift first within each donor.
// PRE: none (empty search returns all rows)
// POST: Returns matching rows ordered by participant asc, date desc, number desc
func (s *SQLiteStore) List(ctx context.Context, search string) ([]ListRow, error) {
	pred := s.search.Build(search)
	query := `SELECT d.participant_id, d.number, d.donated_at, d.amount_cents, p.first_name, p.last_name
		FROM donation d
		JOIN participant p ON p.id = d.participant_id
		WHERE ` + pred.Clause + `
		ORDER BY d.participant_id ASC, d.donated_at DESC, d.number DESC`

	rows, err := s.db.QueryContext(ctx, query, pred.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ListRow
	for rows.Next() {
		var r ListRow
		var donatedAt string
		if err := rows.Scan(&r.ParticipantID, &r.Number, &donatedAt, &r.AmountCents, &r.DonorFirstName, &r.DonorLastName); err != nil {
			return nil, err
		}
		r.Date = parseDate(donatedAt)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Donation dates are stored as bare YYYY-MM-DD so strftime can re-render
// them for search.
const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
