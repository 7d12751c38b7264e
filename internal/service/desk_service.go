package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/campuslabs/desk-reservation/internal/model"
)

// DeskStore is the slice of the desk repository the service depends on.
// *repository.DeskRepo satisfies it; tests substitute fakes.
type DeskStore interface {
	Create(ctx context.Context, d *model.Desk) error
	GetByID(ctx context.Context, id uint64) (*model.Desk, error)
	Update(ctx context.Context, id uint64, deskType, includedResource string, available bool) (*model.Desk, error)
	Delete(ctx context.Context, id uint64) error
	SetAvailability(ctx context.Context, id uint64, available bool, cutoff time.Time) (*model.Desk, int64, error)
	ListAll(ctx context.Context) ([]model.Desk, error)
	ListAvailable(ctx context.Context, typeFilter string) ([]model.Desk, error)
}

// DeskService owns the desk inventory rules and coordinates the
// cascading effects of inventory changes onto reservations, so that the
// desk and reservation repositories never need to know about each
// other. Admin authorization happens in middleware before any of these
// methods run.
type DeskService struct {
	desks DeskStore
	now   func() time.Time
}

// NewDeskService constructs a DeskService over the given store.
func NewDeskService(desks DeskStore) *DeskService {
	if desks == nil {
		panic("nil store passed to NewDeskService")
	}
	return &DeskService{desks: desks, now: time.Now}
}

// CreateDesk validates a desk entry and inserts it. The tag is
// canonicalized to upper case before storing, which together with the
// unique key makes tag uniqueness case-insensitive. New desks default
// to available unless the entry says otherwise.
func (s *DeskService) CreateDesk(ctx context.Context, entry model.DeskEntry) (*model.Desk, error) {
	tag := strings.ToUpper(strings.TrimSpace(entry.Tag))
	if tag == "" {
		return nil, ErrInvalidTag
	}
	if !model.ValidDeskType(entry.DeskType) {
		return nil, ErrInvalidDeskType
	}
	if !model.ValidIncludedResource(entry.IncludedResource) {
		return nil, ErrInvalidResource
	}
	d := &model.Desk{
		Tag:              tag,
		DeskType:         entry.DeskType,
		IncludedResource: entry.IncludedResource,
		Available:        entry.Available,
	}
	if err := s.desks.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDesk changes a desk's type, included resource and availability
// flag. The tag is immutable after creation and is ignored on the
// incoming entry.
func (s *DeskService) UpdateDesk(ctx context.Context, id uint64, entry model.DeskEntry) (*model.Desk, error) {
	if !model.ValidDeskType(entry.DeskType) {
		return nil, ErrInvalidDeskType
	}
	if !model.ValidIncludedResource(entry.IncludedResource) {
		return nil, ErrInvalidResource
	}
	return s.desks.Update(ctx, id, entry.DeskType, entry.IncludedResource, entry.Available)
}

// GetDesk returns a single desk by ID.
func (s *DeskService) GetDesk(ctx context.Context, id uint64) (*model.Desk, error) {
	return s.desks.GetByID(ctx, id)
}

// ListAll returns the whole inventory ordered by tag.
func (s *DeskService) ListAll(ctx context.Context) ([]model.Desk, error) {
	return s.desks.ListAll(ctx)
}

// ListAvailable returns reservable desks, optionally filtered to one
// desk type. "All" and the empty string mean no filter.
func (s *DeskService) ListAvailable(ctx context.Context, typeFilter string) ([]model.Desk, error) {
	return s.desks.ListAvailable(ctx, typeFilter)
}

// RemoveDeskCascade deletes a desk together with every reservation
// referencing it, past and future. The store runs both deletes in one
// transaction, so the caller either sees the whole cascade or none of
// it. The removed desk is returned for confirmation messaging.
func (s *DeskService) RemoveDeskCascade(ctx context.Context, id uint64) (*model.Desk, error) {
	d, err := s.desks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.desks.Delete(ctx, id); err != nil {
		return nil, err
	}
	log.Printf("desk %s (id=%d) removed from inventory", d.Tag, d.ID)
	return d, nil
}

// ToggleAvailabilityCascade sets a desk's availability. Turning a desk
// off removes its future reservations in the same transaction; the slot
// currently in progress counts as future so its holder is notified too.
// Turning a desk on never cascades. Returns the updated desk and the
// number of reservations removed.
func (s *DeskService) ToggleAvailabilityCascade(ctx context.Context, id uint64, available bool) (*model.Desk, int64, error) {
	t := s.now()
	cutoff := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	d, removed, err := s.desks.SetAvailability(ctx, id, available, cutoff)
	if err != nil {
		return nil, 0, err
	}
	if !available && removed > 0 {
		log.Printf("desk %s marked unavailable, %d upcoming reservation(s) cancelled", d.Tag, removed)
	}
	return d, removed, nil
}
