package dto

import "time"

// CreateRequestRequest payload for a new borrow request.
type CreateRequestRequest struct {
	Description string `json:"description"`
}

// RequestResponse representation, enriched with the items listed in response.
type RequestResponse struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	Created     time.Time      `json:"created"`
	Items       []ItemResponse `json:"items"`
}
