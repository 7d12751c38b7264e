// Package queue defines the message payloads exchanged over the broker
// and the publisher/consumer pair for the reservation.confirmed queue.
package queue

// ReservationConfirmedEvent is published when a desk reservation is
// successfully created. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID    uint64 `json:"reservation_id"`
	UserID           uint64 `json:"user_id"`
	DeskID           uint64 `json:"desk_id"`
	DeskTag          string `json:"desk_tag"`
	DeskType         string `json:"desk_type"`
	IncludedResource string `json:"included_resource,omitempty"`
	Date             string `json:"date"`
	ConfirmedAt      string `json:"confirmed_at"`
}
