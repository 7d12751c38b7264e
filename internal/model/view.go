package model

// UserReservation is the read model returned when listing a member's own
// reservations: each reservation joined with the desk it refers to.
type UserReservation struct {
	Reservation Reservation `json:"reservation"`
	Desk        Desk        `json:"desk"`
}

// ReservationDetail is the read model returned by the admin listing
// endpoints. It joins a reservation with its desk and the user who holds
// it. The three entities are combined by value at query time and never
// stored in this shape.
type ReservationDetail struct {
	Reservation Reservation `json:"reservation"`
	Desk        Desk        `json:"desk"`
	User        User        `json:"user"`
}
