package domain

import "time"

// BookingStatus enumerates the approval lifecycle of a booking.
type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

// BookingState enumerates listing filters for booking queries.
type BookingState string

const (
	BookingStateAll      BookingState = "ALL"
	BookingStateCurrent  BookingState = "CURRENT"
	BookingStatePast     BookingState = "PAST"
	BookingStateFuture   BookingState = "FUTURE"
	BookingStateWaiting  BookingState = "WAITING"
	BookingStateRejected BookingState = "REJECTED"
)

// Booking is a reservation of an item by a non-owner user for a date range,
// subject to owner approval.
type Booking struct {
	ID        int64
	StartDate time.Time
	EndDate   time.Time
	ItemID    int64
	BookerID  int64
	Status    BookingStatus
}
