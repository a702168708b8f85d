package domain

// Item is a shareable object listed by an owning user. RequestID links the item
// to the borrow request it was created in response to, when there is one.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}
