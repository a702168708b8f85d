package domain

import "time"

// ItemRequest is a public request for an item a user needs but cannot find
// listed. Immutable after creation.
type ItemRequest struct {
	ID          int64
	Description string
	RequestorID int64
	CreatedAt   time.Time
}
