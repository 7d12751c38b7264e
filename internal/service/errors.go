// Package service implements the booking rules and the cross-entity
// cascades that sit between the HTTP handlers and the repositories.
package service

import "errors"

// ErrDeskUnavailable is returned when a booking targets a desk whose
// availability flag is off.
var ErrDeskUnavailable = errors.New("desk is unavailable")

// ErrInvalidSlot is returned when a booking targets a slot outside the
// rolling window, on a weekend, or off the hourly grid.
var ErrInvalidSlot = errors.New("slot outside the booking window")

// ErrSlotInPast is returned when a booking targets a slot that has
// already started.
var ErrSlotInPast = errors.New("slot is in the past")

// ErrInvalidTag is returned when creating a desk with an empty tag.
var ErrInvalidTag = errors.New("desk tag must not be empty")

// ErrInvalidDeskType is returned when a desk is created or updated with
// a type outside the fixed catalog.
var ErrInvalidDeskType = errors.New("unknown desk type")

// ErrInvalidResource is returned when a desk is created or updated with
// an included resource outside the fixed catalog.
var ErrInvalidResource = errors.New("unknown included resource")
