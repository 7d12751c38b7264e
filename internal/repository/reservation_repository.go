package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/campuslabs/desk-reservation/internal/model"
)

// ReservationRepo owns reservation rows. The unique key on
// (desk_id, date) makes the conflict check and the insert one atomic
// unit: when two callers race on the same slot the database admits
// exactly one and the other receives ErrSlotTaken. The future/past
// partition of the listing queries is evaluated against the now value
// supplied by the caller at query time, never stored.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts a reservation and populates its generated ID. A
// duplicate (desk_id, date) pair yields ErrSlotTaken. Calendar rule
// checks (window, weekday, past) happen in the service layer before
// this call; the insert itself is the authoritative guard for both
// conflicts and desk availability. Selecting the desk row inside the
// insert makes the availability check part of the same statement, so
// it serializes against the row lock the toggle-off cascade holds: the
// insert either lands before the cascade and is swept by it, or sees
// the flag already off and inserts nothing.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO desk_reservations (desk_id, user_id, date)
	           SELECT d.id, ?, ? FROM desks d WHERE d.id = ? AND d.available = TRUE`
	result, err := r.db.ExecContext(ctx, q, res.UserID, res.Date, res.DeskID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") { // mysql duplicate entry
			return ErrSlotTaken
		}
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDeskUnavailable
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// Delete removes the reservation with the given ID, but only when it
// belongs to the given desk. Zero rows affected means the reservation
// never existed, was already removed, or belongs to another desk; all
// three report ErrReservationNotFound.
func (r *ReservationRepo) Delete(ctx context.Context, deskID, reservationID uint64) error {
	const q = `DELETE FROM desk_reservations WHERE id = ? AND desk_id = ?`
	res, err := r.db.ExecContext(ctx, q, reservationID, deskID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// ListByUser returns every reservation held by the user, past and
// future, each joined with its desk, ordered by slot date.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.UserReservation, error) {
	const q = `SELECT r.id, r.desk_id, r.user_id, r.date,
	                  d.id, d.tag, d.desk_type, d.included_resource, d.available
	           FROM desk_reservations r
	           JOIN desks d ON d.id = r.desk_id
	           WHERE r.user_id = ?
	           ORDER BY r.date`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.UserReservation, 0)
	for rows.Next() {
		var ur model.UserReservation
		if err := rows.Scan(
			&ur.Reservation.ID, &ur.Reservation.DeskID, &ur.Reservation.UserID, &ur.Reservation.Date,
			&ur.Desk.ID, &ur.Desk.Tag, &ur.Desk.DeskType, &ur.Desk.IncludedResource, &ur.Desk.Available,
		); err != nil {
			return nil, err
		}
		out = append(out, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByDesk returns the desk's reservations from cutoff onward,
// ordered by slot date. The slot picker uses this feed to grey out
// taken slots; it never needs history.
func (r *ReservationRepo) ListByDesk(ctx context.Context, deskID uint64, cutoff time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, desk_id, user_id, date FROM desk_reservations
	           WHERE desk_id = ? AND date >= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, q, deskID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.DeskID, &res.UserID, &res.Date); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListFuture returns reservations dated strictly after now, each joined
// with its desk and holder, ordered by slot date. When pidPrefix is
// non-empty only reservations whose holder's PID, as decimal text,
// starts with the prefix are returned.
func (r *ReservationRepo) ListFuture(ctx context.Context, now time.Time, pidPrefix string) ([]model.ReservationDetail, error) {
	return r.listDetails(ctx, `r.date > ?`, now, pidPrefix)
}

// ListPast is the complement of ListFuture: reservations dated at or
// before now. The same reservation flips from one listing to the other
// as the clock passes its slot, with no stored state involved.
func (r *ReservationRepo) ListPast(ctx context.Context, now time.Time, pidPrefix string) ([]model.ReservationDetail, error) {
	return r.listDetails(ctx, `r.date <= ?`, now, pidPrefix)
}

func (r *ReservationRepo) listDetails(ctx context.Context, datePred string, now time.Time, pidPrefix string) ([]model.ReservationDetail, error) {
	q := `SELECT r.id, r.desk_id, r.user_id, r.date,
	             d.id, d.tag, d.desk_type, d.included_resource, d.available,
	             u.id, u.pid, u.onyen, u.first_name, u.last_name, u.email, u.pronouns, u.role
	      FROM desk_reservations r
	      JOIN desks d ON d.id = r.desk_id
	      JOIN users u ON u.id = r.user_id
	      WHERE ` + datePred
	args := []any{now}
	if pidPrefix != "" {
		q += ` AND CAST(u.pid AS CHAR) LIKE CONCAT(?, '%')`
		args = append(args, pidPrefix)
	}
	q += ` ORDER BY r.date`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ReservationDetail, 0)
	for rows.Next() {
		var det model.ReservationDetail
		if err := rows.Scan(
			&det.Reservation.ID, &det.Reservation.DeskID, &det.Reservation.UserID, &det.Reservation.Date,
			&det.Desk.ID, &det.Desk.Tag, &det.Desk.DeskType, &det.Desk.IncludedResource, &det.Desk.Available,
			&det.User.ID, &det.User.PID, &det.User.Onyen, &det.User.FirstName, &det.User.LastName,
			&det.User.Email, &det.User.Pronouns, &det.User.Role,
		); err != nil {
			return nil, err
		}
		out = append(out, det)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PurgeOlderThan deletes every reservation dated strictly before cutoff
// and reports how many rows went. Future reservations are never
// affected because cutoff always lies in the past.
func (r *ReservationRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM desk_reservations WHERE date < ?`
	res, err := r.db.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
