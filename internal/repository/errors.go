// Package repository defines sentinel error values that are reused
// across repositories. Higher layers such as handlers compare against
// them with errors.Is to pick an HTTP status: not-found values map to
// 404 while conflict values map to 409. Each failing operation leaves
// no side effect, so callers may retry with corrected input.
package repository

import "errors"

// ErrDeskNotFound is returned when a desk lookup, update or delete
// targets an ID with no matching row.
var ErrDeskNotFound = errors.New("desk not found")

// ErrReservationNotFound is returned when a reservation delete targets
// an ID that does not exist or does not belong to the given desk.
// Removing an already-removed reservation reports this error rather
// than succeeding silently, so callers must not retry blindly.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrUserNotFound is returned when a user lookup fails. User rows are
// provisioned externally, so this usually means a stale session.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateTag is returned when creating a desk whose canonical tag
// collides with an existing desk, available or not. Enforced by the
// unique key on desks.tag.
var ErrDuplicateTag = errors.New("desk tag already in use")

// ErrDeskUnavailable is returned when a reservation insert finds the
// desk's availability flag off at insert time. Of a booking racing an
// availability-off cascade, the insert either lands before the cascade
// and is swept by it, or lands after and receives this error.
var ErrDeskUnavailable = errors.New("desk is unavailable")

// ErrSlotTaken is returned when inserting a reservation for a
// (desk, slot) pair that already has a live reservation. Enforced by
// the unique key on (desk_id, date): of two concurrent bookings for
// the same slot exactly one wins and the other receives this error.
var ErrSlotTaken = errors.New("slot already reserved")
