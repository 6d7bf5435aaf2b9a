package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"awc/internal/models"
)

// ErrNotFound is returned when the targeted record does not exist in the
// requested bucket. Mutations report it instead of succeeding silently so
// the admin UI can tell the operator the item was already handled.
var ErrNotFound = errors.New("store: record not found")

// ListFilter is the validated filter-request for listing a bucket.
// Query and Expertises combine with AND; an empty Expertises set matches
// everything.
type ListFilter struct {
	Status      models.Status
	Query       string
	Expertises  []string
	NewestFirst bool
}

// RecordStore persists directory records.
type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

const recordColumns = `id, name, province, expertise, link, reason, status, created_at`

func scanRecord(s interface{ Scan(...any) error }) (models.Record, error) {
	var r models.Record
	err := s.Scan(&r.ID, &r.Name, &r.From, &r.Expertise, &r.Link, &r.Reason, &r.Status, &r.CreatedAt)
	return r, err
}

// Create inserts a new pending record and returns it with its generated id
// and timestamp.
func (s *RecordStore) Create(ctx context.Context, r models.Record) (models.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO records (name, province, expertise, link, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+recordColumns,
		r.Name, r.From, r.Expertise, r.Link, r.Reason, models.StatusPending,
	)
	created, err := scanRecord(row)
	if err != nil {
		return models.Record{}, fmt.Errorf("store: create record: %w", err)
	}
	return created, nil
}

// Get fetches a record by id within a bucket.
func (s *RecordStore) Get(ctx context.Context, id int64, status models.Status) (models.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM records WHERE id = $1 AND status = $2`,
		id, status,
	)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrNotFound
	} else if err != nil {
		return models.Record{}, fmt.Errorf("store: get record: %w", err)
	}
	return r, nil
}

// List returns the records of a bucket matching the filter, ordered by
// creation time.
func (s *RecordStore) List(ctx context.Context, f ListFilter) ([]models.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM records WHERE status = $1`
	args := []any{f.Status}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		q += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if len(f.Expertises) > 0 {
		args = append(args, pq.Array(f.Expertises))
		q += fmt.Sprintf(" AND expertise = ANY($%d)", len(args))
	}
	if f.NewestFirst {
		q += " ORDER BY created_at DESC, id DESC"
	} else {
		q += " ORDER BY created_at ASC, id ASC"
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list records: %w", err)
	}
	defer rows.Close()

	var out []models.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list records: %w", err)
	}
	return out, nil
}

// Update rewrites the public fields of a record in place. Id, status and
// created_at are never touched. The update is scoped to the record's
// current bucket so a concurrently approved or deleted record reports
// ErrNotFound instead of resurfacing elsewhere.
func (s *RecordStore) Update(ctx context.Context, id int64, status models.Status, r models.Record) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE records
		SET name = $1, province = $2, expertise = $3, link = $4, reason = $5
		WHERE id = $6 AND status = $7`,
		r.Name, r.From, r.Expertise, r.Link, r.Reason, id, status,
	)
	if err != nil {
		return fmt.Errorf("store: update record: %w", err)
	}
	return oneRowOrNotFound(res)
}

// Approve moves a pending record to the approved bucket. The single guarded
// UPDATE makes the transition atomic: of two back-to-back approvals only the
// first can match the pending row, the second gets ErrNotFound.
func (s *RecordStore) Approve(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE records SET status = $1 WHERE id = $2 AND status = $3`,
		models.StatusApproved, id, models.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("store: approve record: %w", err)
	}
	return oneRowOrNotFound(res)
}

// Delete removes a record from a bucket. A repeated delete reports
// ErrNotFound.
func (s *RecordStore) Delete(ctx context.Context, id int64, status models.Status) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM records WHERE id = $1 AND status = $2`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("store: delete record: %w", err)
	}
	return oneRowOrNotFound(res)
}

func oneRowOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
