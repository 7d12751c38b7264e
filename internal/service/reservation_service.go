package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/campuslabs/desk-reservation/internal/calendar"
	"github.com/campuslabs/desk-reservation/internal/model"
	"github.com/campuslabs/desk-reservation/internal/queue"
	"github.com/campuslabs/desk-reservation/internal/repository"
)

// RetentionDays is the age threshold for the admin purge: past
// reservations older than this many days are eligible for deletion.
const RetentionDays = 30

// ReservationStore is the slice of the reservation repository the
// service depends on. *repository.ReservationRepo satisfies it.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	Delete(ctx context.Context, deskID, reservationID uint64) error
	ListByUser(ctx context.Context, userID uint64) ([]model.UserReservation, error)
	ListByDesk(ctx context.Context, deskID uint64, cutoff time.Time) ([]model.Reservation, error)
	ListFuture(ctx context.Context, now time.Time, pidPrefix string) ([]model.ReservationDetail, error)
	ListPast(ctx context.Context, now time.Time, pidPrefix string) ([]model.ReservationDetail, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// DeskGetter resolves desk IDs for booking validation.
type DeskGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Desk, error)
}

// ReservationService implements the booking rules: which slots may be
// reserved, how cancellations behave, and the future/past partitioning
// of the listing queries. The conflict check itself lives in the
// store's unique key; this layer only rejects requests that could never
// succeed.
type ReservationService struct {
	reservations ReservationStore
	desks        DeskGetter
	publish      func(ctx context.Context, ev queue.ReservationConfirmedEvent)
	now          func() time.Time
}

// NewReservationService constructs a ReservationService. publish may be
// nil when no message broker is configured; bookings then proceed
// without emitting events.
func NewReservationService(reservations ReservationStore, desks DeskGetter, publish func(ctx context.Context, ev queue.ReservationConfirmedEvent)) *ReservationService {
	if reservations == nil || desks == nil {
		panic("nil store passed to NewReservationService")
	}
	return &ReservationService{
		reservations: reservations,
		desks:        desks,
		publish:      publish,
		now:          time.Now,
	}
}

// Reserve books the given slot on the given desk for the given user.
// Checks run in order: the desk must exist and be available, the slot
// must lie on a weekday inside the rolling window and on the hourly
// grid, and it must not have started yet. The final insert is the
// authoritative guard for both double booking and availability: if
// another caller won the slot in the meantime the store reports
// ErrSlotTaken, and if the desk went unavailable between the read here
// and the insert the store re-checks the flag and reports the loss.
// Nothing is stored on any failure.
func (s *ReservationService) Reserve(ctx context.Context, deskID, userID uint64, date time.Time) (*model.Reservation, error) {
	desk, err := s.desks.GetByID(ctx, deskID)
	if err != nil {
		return nil, err
	}
	if !desk.Available {
		return nil, ErrDeskUnavailable
	}
	now := s.now()
	if !calendar.InWindow(now, date) || !calendar.IsBookableDay(date) || !calendar.IsSlotHour(date) {
		return nil, ErrInvalidSlot
	}
	if calendar.IsPast(now, date) {
		return nil, ErrSlotInPast
	}
	res := &model.Reservation{DeskID: deskID, UserID: userID, Date: date}
	if err := s.reservations.Create(ctx, res); err != nil {
		if errors.Is(err, repository.ErrDeskUnavailable) {
			return nil, ErrDeskUnavailable
		}
		return nil, err
	}
	if s.publish != nil {
		s.publish(ctx, queue.ReservationConfirmedEvent{
			ReservationID:    res.ID,
			UserID:           userID,
			DeskID:           desk.ID,
			DeskTag:          desk.Tag,
			DeskType:         desk.DeskType,
			IncludedResource: desk.IncludedResource,
			Date:             res.Date.UTC().Format(time.RFC3339),
			ConfirmedAt:      now.UTC().Format(time.RFC3339),
		})
	}
	return res, nil
}

// Cancel removes a user's own reservation from the given desk.
func (s *ReservationService) Cancel(ctx context.Context, deskID, reservationID uint64) error {
	return s.reservations.Delete(ctx, deskID, reservationID)
}

// OverrideCancel removes a reservation on behalf of its holder. Stored
// state changes exactly as with Cancel; the distinction exists for the
// audit trail and the caller-facing message.
func (s *ReservationService) OverrideCancel(ctx context.Context, deskID, reservationID, adminID uint64) error {
	if err := s.reservations.Delete(ctx, deskID, reservationID); err != nil {
		return err
	}
	log.Printf("admin %d override-cancelled reservation %d on desk %d", adminID, reservationID, deskID)
	return nil
}

// ListByUser returns all of a user's reservations, past and future,
// each joined with its desk.
func (s *ReservationService) ListByUser(ctx context.Context, userID uint64) ([]model.UserReservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}

// ListByDesk returns a desk's upcoming reservations starting from the
// top of the current hour, so a slot in progress still shows as taken.
func (s *ReservationService) ListByDesk(ctx context.Context, deskID uint64) ([]model.Reservation, error) {
	t := s.now()
	cutoff := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return s.reservations.ListByDesk(ctx, deskID, cutoff)
}

// ListFuture returns reservations dated after now joined with desk and
// holder, optionally filtered by PID prefix. The partition is computed
// against the clock at call time, never cached.
func (s *ReservationService) ListFuture(ctx context.Context, pidPrefix string) ([]model.ReservationDetail, error) {
	return s.reservations.ListFuture(ctx, s.now(), pidPrefix)
}

// ListPast is the complement of ListFuture.
func (s *ReservationService) ListPast(ctx context.Context, pidPrefix string) ([]model.ReservationDetail, error) {
	return s.reservations.ListPast(ctx, s.now(), pidPrefix)
}

// PurgeOld deletes reservations older than the retention window and
// reports how many were removed.
func (s *ReservationService) PurgeOld(ctx context.Context) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -RetentionDays)
	removed, err := s.reservations.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		log.Printf("purged %d reservation(s) older than %d days", removed, RetentionDays)
	}
	return removed, nil
}
