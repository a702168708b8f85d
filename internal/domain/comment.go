package domain

import "time"

// Comment is post-rental feedback left on an item by a past booker.
type Comment struct {
	ID        int64
	Text      string
	ItemID    int64
	AuthorID  int64
	CreatedAt time.Time
}
