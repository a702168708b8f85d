package dto

import (
	"time"

	"github.com/shareit-app/lending-service/internal/domain"
)

// CreateBookingRequest payload.
type CreateBookingRequest struct {
	ItemID *int64     `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

// BookerResponse is the short booker reference on a booking.
type BookerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookedItemResponse is the short item reference on a booking.
type BookedItemResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingResponse representation.
type BookingResponse struct {
	ID     int64                `json:"id"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
	Status domain.BookingStatus `json:"status"`
	Booker BookerResponse       `json:"booker"`
	Item   BookedItemResponse   `json:"item"`
}
