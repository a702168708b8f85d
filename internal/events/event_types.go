package events

import (
	"time"

	"github.com/shareit-app/lending-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventItemCreated          EventType = "item_created"
	EventBookingCreated       EventType = "booking_created"
	EventBookingStatusChanged EventType = "booking_status_changed"
	EventCommentAdded         EventType = "comment_added"
	EventRequestCreated       EventType = "request_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ItemCreatedPayload payload.
type ItemCreatedPayload struct {
	ItemID    int64  `json:"item_id"`
	OwnerID   int64  `json:"owner_id"`
	Name      string `json:"name"`
	RequestID *int64 `json:"request_id,omitempty"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	BookingID int64     `json:"booking_id"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// BookingStatusChangedPayload payload.
type BookingStatusChangedPayload struct {
	BookingID int64                `json:"booking_id"`
	ItemID    int64                `json:"item_id"`
	OldStatus domain.BookingStatus `json:"old_status"`
	NewStatus domain.BookingStatus `json:"new_status"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID   int64  `json:"comment_id"`
	ItemID      int64  `json:"item_id"`
	AuthorID    int64  `json:"author_id"`
	TextPreview string `json:"text_preview"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	RequestID   int64  `json:"request_id"`
	RequestorID int64  `json:"requestor_id"`
	Description string `json:"description"`
}
