package model

import "time"

// Reservation records a user's booking of one desk for one hour slot.
// Date is the absolute instant of the slot's start; together with DeskID
// it is unique among live reservations so a desk can never be
// double-booked for the same slot.
//
// Fields:
//  ID     – primary key identifier.
//  DeskID – desk being reserved.
//  UserID – user who holds the reservation.
//  Date   – absolute start instant of the reserved hour.
type Reservation struct {
	ID     uint64    `json:"id"`      // desk_reservations.id
	DeskID uint64    `json:"desk_id"` // desk_reservations.desk_id
	UserID uint64    `json:"user_id"` // desk_reservations.user_id
	Date   time.Time `json:"date"`    // desk_reservations.date
}
