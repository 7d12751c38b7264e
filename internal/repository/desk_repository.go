package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/campuslabs/desk-reservation/internal/model"
)

// DeskRepo owns the desk inventory. It enforces tag uniqueness through
// the unique key on desks.tag and runs the two cascading operations
// (removal, availability toggle) as single transactions so concurrent
// readers never observe a half-applied cascade.
type DeskRepo struct {
	db *sql.DB
}

// NewDeskRepo returns a DeskRepo bound to the given database.
func NewDeskRepo(db *sql.DB) *DeskRepo { return &DeskRepo{db: db} }

// DB exposes the underlying handle for health checks and test setup.
func (r *DeskRepo) DB() *sql.DB { return r.db }

// Create inserts a new desk and populates its generated ID. The caller
// must pass the tag already in canonical upper-case form. A duplicate
// tag yields ErrDuplicateTag.
func (r *DeskRepo) Create(ctx context.Context, d *model.Desk) error {
	const q = `INSERT INTO desks (tag, desk_type, included_resource, available) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, d.Tag, d.DeskType, d.IncludedResource, d.Available)
	if err != nil {
		if strings.Contains(err.Error(), "1062") { // mysql duplicate entry
			return ErrDuplicateTag
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID retrieves a desk by its ID. Returns ErrDeskNotFound when no
// row matches.
func (r *DeskRepo) GetByID(ctx context.Context, id uint64) (*model.Desk, error) {
	const q = `SELECT id, tag, desk_type, included_resource, available FROM desks WHERE id = ?`
	var d model.Desk
	err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Tag, &d.DeskType, &d.IncludedResource, &d.Available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeskNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Update overwrites the mutable columns of a desk: type, included
// resource and availability flag. The tag is immutable after creation
// and is deliberately absent from the statement. The updated row is
// read back and returned; ErrDeskNotFound when the ID is unknown.
func (r *DeskRepo) Update(ctx context.Context, id uint64, deskType, includedResource string, available bool) (*model.Desk, error) {
	const q = `UPDATE desks SET desk_type = ?, included_resource = ?, available = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, deskType, includedResource, available, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a desk and every reservation referencing it, past and
// future, in one transaction. Either the whole cascade commits or none
// of it is visible. Returns ErrDeskNotFound when the ID is unknown.
func (r *DeskRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM desk_reservations WHERE desk_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM desks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDeskNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SetAvailability flips a desk's availability flag. When turning a desk
// unavailable, every future reservation (date after cutoff) is removed
// in the same transaction and the count of removed reservations is
// returned; past reservations are history and stay untouched. Turning
// a desk available never cascades. Returns ErrDeskNotFound when the ID
// is unknown.
func (r *DeskRepo) SetAvailability(ctx context.Context, id uint64, available bool, cutoff time.Time) (*model.Desk, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the desk row so the cascade and the flag flip are atomic
	// relative to concurrent bookings on the same desk.
	var d model.Desk
	const sel = `SELECT id, tag, desk_type, included_resource, available FROM desks WHERE id = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, sel, id).Scan(&d.ID, &d.Tag, &d.DeskType, &d.IncludedResource, &d.Available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrDeskNotFound
		}
		return nil, 0, err
	}

	var removed int64
	if !available {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM desk_reservations WHERE desk_id = ? AND date >= ?`, id, cutoff)
		if err != nil {
			return nil, 0, err
		}
		if removed, err = res.RowsAffected(); err != nil {
			return nil, 0, err
		}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE desks SET available = ? WHERE id = ?`, available, id); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	committed = true
	d.Available = available
	return &d, removed, nil
}

// ListAll returns every desk, available or not, ordered by tag.
func (r *DeskRepo) ListAll(ctx context.Context) ([]model.Desk, error) {
	const q = `SELECT id, tag, desk_type, included_resource, available FROM desks ORDER BY tag`
	return r.list(ctx, q)
}

// ListAvailable returns desks whose availability flag is set, optionally
// restricted to a single desk type. Pass an empty string or "All" for
// no type filter. Results are ordered by tag.
func (r *DeskRepo) ListAvailable(ctx context.Context, typeFilter string) ([]model.Desk, error) {
	if typeFilter == "" || typeFilter == "All" {
		const q = `SELECT id, tag, desk_type, included_resource, available FROM desks WHERE available = TRUE ORDER BY tag`
		return r.list(ctx, q)
	}
	const q = `SELECT id, tag, desk_type, included_resource, available FROM desks WHERE available = TRUE AND desk_type = ? ORDER BY tag`
	return r.list(ctx, q, typeFilter)
}

func (r *DeskRepo) list(ctx context.Context, q string, args ...any) ([]model.Desk, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	desks := make([]model.Desk, 0)
	for rows.Next() {
		var d model.Desk
		if err := rows.Scan(&d.ID, &d.Tag, &d.DeskType, &d.IncludedResource, &d.Available); err != nil {
			return nil, err
		}
		desks = append(desks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return desks, nil
}
