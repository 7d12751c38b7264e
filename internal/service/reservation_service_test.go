package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/desk-reservation/internal/model"
	"github.com/campuslabs/desk-reservation/internal/queue"
	"github.com/campuslabs/desk-reservation/internal/repository"
)

type fakeReservationStore struct {
	create         func(ctx context.Context, res *model.Reservation) error
	delete         func(ctx context.Context, deskID, reservationID uint64) error
	listByUser     func(ctx context.Context, userID uint64) ([]model.UserReservation, error)
	listByDesk     func(ctx context.Context, deskID uint64, cutoff time.Time) ([]model.Reservation, error)
	listFuture     func(ctx context.Context, now time.Time, pidPrefix string) ([]model.ReservationDetail, error)
	listPast       func(ctx context.Context, now time.Time, pidPrefix string) ([]model.ReservationDetail, error)
	purgeOlderThan func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (f *fakeReservationStore) Create(ctx context.Context, res *model.Reservation) error {
	return f.create(ctx, res)
}
func (f *fakeReservationStore) Delete(ctx context.Context, deskID, reservationID uint64) error {
	return f.delete(ctx, deskID, reservationID)
}
func (f *fakeReservationStore) ListByUser(ctx context.Context, userID uint64) ([]model.UserReservation, error) {
	return f.listByUser(ctx, userID)
}
func (f *fakeReservationStore) ListByDesk(ctx context.Context, deskID uint64, cutoff time.Time) ([]model.Reservation, error) {
	return f.listByDesk(ctx, deskID, cutoff)
}
func (f *fakeReservationStore) ListFuture(ctx context.Context, now time.Time, pidPrefix string) ([]model.ReservationDetail, error) {
	return f.listFuture(ctx, now, pidPrefix)
}
func (f *fakeReservationStore) ListPast(ctx context.Context, now time.Time, pidPrefix string) ([]model.ReservationDetail, error) {
	return f.listPast(ctx, now, pidPrefix)
}
func (f *fakeReservationStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return f.purgeOlderThan(ctx, cutoff)
}

var _ ReservationStore = (*fakeReservationStore)(nil)

type fakeDeskGetter struct {
	getByID func(ctx context.Context, id uint64) (*model.Desk, error)
}

func (f *fakeDeskGetter) GetByID(ctx context.Context, id uint64) (*model.Desk, error) {
	return f.getByID(ctx, id)
}

// Monday 2024-06-10, 08:30 UTC. Every weekday slot of the day is still
// ahead of this instant.
var testNow = time.Date(2024, time.June, 10, 8, 30, 0, 0, time.UTC)

func availableDesk(id uint64) *fakeDeskGetter {
	return &fakeDeskGetter{
		getByID: func(_ context.Context, gid uint64) (*model.Desk, error) {
			return &model.Desk{ID: gid, Tag: "A1", DeskType: "Computer Desk", IncludedResource: "Windows Desktop i7", Available: true}, nil
		},
	}
}

func newTestReservationService(store *fakeReservationStore, desks *fakeDeskGetter, publish func(context.Context, queue.ReservationConfirmedEvent)) *ReservationService {
	svc := NewReservationService(store, desks, publish)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestReserveHappyPath(t *testing.T) {
	store := &fakeReservationStore{
		create: func(_ context.Context, res *model.Reservation) error {
			res.ID = 42
			return nil
		},
	}
	var published *queue.ReservationConfirmedEvent
	svc := newTestReservationService(store, availableDesk(1), func(_ context.Context, ev queue.ReservationConfirmedEvent) {
		published = &ev
	})

	slot := time.Date(2024, time.June, 10, 14, 0, 0, 0, time.UTC)
	res, err := svc.Reserve(context.Background(), 1, 9, slot)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), res.ID)
	assert.Equal(t, slot, res.Date)

	require.NotNil(t, published)
	assert.Equal(t, uint64(42), published.ReservationID)
	assert.Equal(t, "A1", published.DeskTag)
	assert.Equal(t, slot.Format(time.RFC3339), published.Date)
}

func TestReserveNilPublisher(t *testing.T) {
	store := &fakeReservationStore{
		create: func(context.Context, *model.Reservation) error { return nil },
	}
	svc := newTestReservationService(store, availableDesk(1), nil)

	_, err := svc.Reserve(context.Background(), 1, 9, time.Date(2024, time.June, 11, 9, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
}

func TestReserveUnavailableDesk(t *testing.T) {
	desks := &fakeDeskGetter{
		getByID: func(_ context.Context, id uint64) (*model.Desk, error) {
			return &model.Desk{ID: id, Tag: "A1", Available: false}, nil
		},
	}
	svc := newTestReservationService(&fakeReservationStore{}, desks, nil)

	_, err := svc.Reserve(context.Background(), 1, 9, time.Date(2024, time.June, 10, 14, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrDeskUnavailable)
}

func TestReserveUnknownDesk(t *testing.T) {
	desks := &fakeDeskGetter{
		getByID: func(context.Context, uint64) (*model.Desk, error) {
			return nil, repository.ErrDeskNotFound
		},
	}
	svc := newTestReservationService(&fakeReservationStore{}, desks, nil)

	_, err := svc.Reserve(context.Background(), 1, 9, time.Date(2024, time.June, 10, 14, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, repository.ErrDeskNotFound)
}

func TestReserveSlotValidation(t *testing.T) {
	svc := newTestReservationService(&fakeReservationStore{}, availableDesk(1), nil)
	ctx := context.Background()

	cases := []struct {
		name string
		slot time.Time
		want error
	}{
		{"weekend", time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC), ErrInvalidSlot},
		{"off-grid hour", time.Date(2024, time.June, 10, 17, 0, 0, 0, time.UTC), ErrInvalidSlot},
		{"off-grid minute", time.Date(2024, time.June, 10, 10, 30, 0, 0, time.UTC), ErrInvalidSlot},
		{"beyond window", time.Date(2024, time.July, 12, 10, 0, 0, 0, time.UTC), ErrInvalidSlot},
		{"before window", time.Date(2024, time.June, 7, 10, 0, 0, 0, time.UTC), ErrInvalidSlot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Reserve(ctx, 1, 9, tc.slot)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReservePastSlotSameDay(t *testing.T) {
	svc := newTestReservationService(&fakeReservationStore{}, availableDesk(1), nil)
	svc.now = func() time.Time {
		return time.Date(2024, time.June, 10, 11, 15, 0, 0, time.UTC)
	}

	// 10:00 has already started at 11:15.
	_, err := svc.Reserve(context.Background(), 1, 9, time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestReserveLosesToConcurrentToggleOff(t *testing.T) {
	// The desk reads as available, but by insert time the toggle-off
	// cascade has committed and the store rejects the row.
	store := &fakeReservationStore{
		create: func(context.Context, *model.Reservation) error { return repository.ErrDeskUnavailable },
	}
	published := false
	svc := newTestReservationService(store, availableDesk(1), func(context.Context, queue.ReservationConfirmedEvent) {
		published = true
	})

	_, err := svc.Reserve(context.Background(), 1, 9, time.Date(2024, time.June, 10, 14, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrDeskUnavailable)
	assert.False(t, published, "no event for a failed booking")
}

func TestReserveConflictPassthrough(t *testing.T) {
	store := &fakeReservationStore{
		create: func(context.Context, *model.Reservation) error { return repository.ErrSlotTaken },
	}
	published := false
	svc := newTestReservationService(store, availableDesk(1), func(context.Context, queue.ReservationConfirmedEvent) {
		published = true
	})

	_, err := svc.Reserve(context.Background(), 1, 9, time.Date(2024, time.June, 10, 14, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
	assert.False(t, published, "no event for a failed booking")
}

func TestListByDeskCutoffCoversSlotInProgress(t *testing.T) {
	var gotCutoff time.Time
	store := &fakeReservationStore{
		listByDesk: func(_ context.Context, deskID uint64, cutoff time.Time) ([]model.Reservation, error) {
			gotCutoff = cutoff
			return nil, nil
		},
	}
	svc := newTestReservationService(store, availableDesk(1), nil)
	svc.now = func() time.Time {
		return time.Date(2024, time.June, 10, 10, 45, 0, 0, time.UTC)
	}

	_, err := svc.ListByDesk(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC), gotCutoff)
}

func TestListFutureAndPastUseCallTimeClock(t *testing.T) {
	var futureNow, pastNow time.Time
	store := &fakeReservationStore{
		listFuture: func(_ context.Context, now time.Time, pid string) ([]model.ReservationDetail, error) {
			futureNow = now
			assert.Equal(t, "730", pid)
			return nil, nil
		},
		listPast: func(_ context.Context, now time.Time, pid string) ([]model.ReservationDetail, error) {
			pastNow = now
			return nil, nil
		},
	}
	svc := newTestReservationService(store, availableDesk(1), nil)

	_, err := svc.ListFuture(context.Background(), "730")
	require.NoError(t, err)
	_, err = svc.ListPast(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, testNow, futureNow)
	assert.Equal(t, testNow, pastNow)
}

func TestPurgeOldCutoff(t *testing.T) {
	var gotCutoff time.Time
	store := &fakeReservationStore{
		purgeOlderThan: func(_ context.Context, cutoff time.Time) (int64, error) {
			gotCutoff = cutoff
			return 3, nil
		},
	}
	svc := newTestReservationService(store, availableDesk(1), nil)

	removed, err := svc.PurgeOld(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.Equal(t, testNow.AddDate(0, 0, -30), gotCutoff)
}

func TestOverrideCancelDelegates(t *testing.T) {
	var gotDesk, gotRes uint64
	store := &fakeReservationStore{
		delete: func(_ context.Context, deskID, reservationID uint64) error {
			gotDesk, gotRes = deskID, reservationID
			return nil
		},
	}
	svc := newTestReservationService(store, availableDesk(1), nil)

	require.NoError(t, svc.OverrideCancel(context.Background(), 4, 17, 1))
	assert.Equal(t, uint64(4), gotDesk)
	assert.Equal(t, uint64(17), gotRes)

	store.delete = func(context.Context, uint64, uint64) error {
		return repository.ErrReservationNotFound
	}
	assert.ErrorIs(t, svc.Cancel(context.Background(), 4, 17), repository.ErrReservationNotFound)
}
