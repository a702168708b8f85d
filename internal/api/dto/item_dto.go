package dto

import "time"

// CreateItemRequest payload. Available is a pointer so a missing field can be
// told apart from an explicit false.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest payload; absent fields are not modified.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemResponse representation.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// BookingShortResponse is the booking reference embedded in enriched items.
type BookingShortResponse struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemDetailResponse is an item enriched with booking references and comments.
type ItemDetailResponse struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Available   bool                  `json:"available"`
	RequestID   *int64                `json:"requestId,omitempty"`
	LastBooking *BookingShortResponse `json:"lastBooking"`
	NextBooking *BookingShortResponse `json:"nextBooking"`
	Comments    []CommentResponse     `json:"comments"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse representation.
type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}
