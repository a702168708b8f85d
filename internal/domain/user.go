package domain

// User is the domain model for registered users who list and borrow items.
type User struct {
	ID    int64
	Name  string
	Email string
}
