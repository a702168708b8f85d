// Package memory provides an in-memory storage backend implementing the
// repository interfaces. It backs the service in tests and when
// STORAGE_BACKEND=memory is configured.
package memory

import (
	"sync"

	"github.com/shareit-app/lending-service/internal/domain"
	"github.com/shareit-app/lending-service/internal/repository"
)

// Store holds all entity maps behind a single mutex. Repositories created from
// the same Store share state, mirroring a single database.
type Store struct {
	mu sync.Mutex

	users    map[int64]domain.User
	items    map[int64]domain.Item
	bookings map[int64]domain.Booking
	requests map[int64]domain.ItemRequest
	comments map[int64]domain.Comment

	nextUserID    int64
	nextItemID    int64
	nextBookingID int64
	nextRequestID int64
	nextCommentID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[int64]domain.User),
		items:    make(map[int64]domain.Item),
		bookings: make(map[int64]domain.Booking),
		requests: make(map[int64]domain.ItemRequest),
		comments: make(map[int64]domain.Comment),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s}
}

// Items returns the item repository view of the store.
func (s *Store) Items() repository.ItemRepository {
	return &itemRepository{store: s}
}

// Bookings returns the booking repository view of the store.
func (s *Store) Bookings() repository.BookingRepository {
	return &bookingRepository{store: s}
}

// Requests returns the borrow-request repository view of the store.
func (s *Store) Requests() repository.RequestRepository {
	return &requestRepository{store: s}
}

// Comments returns the comment repository view of the store.
func (s *Store) Comments() repository.CommentRepository {
	return &commentRepository{store: s}
}
