package memory

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/shareit-app/lending-service/internal/domain"
)

type bookingRepository struct {
	store *Store
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBookingID++
	booking.ID = s.nextBookingID
	s.bookings[booking.ID] = *booking
	return nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[booking.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.bookings[booking.ID] = *booking
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &booking, nil
}

func (r *bookingRepository) ListByBooker(ctx context.Context, bookerID int64) ([]domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Booking
	for _, booking := range s.bookings {
		if booking.BookerID == bookerID {
			result = append(result, booking)
		}
	}
	sortBookingsByStartDesc(result)
	return result, nil
}

func (r *bookingRepository) ListByItemOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Booking
	for _, booking := range s.bookings {
		item, ok := s.items[booking.ItemID]
		if ok && item.OwnerID == ownerID {
			result = append(result, booking)
		}
	}
	sortBookingsByStartDesc(result)
	return result, nil
}

func (r *bookingRepository) ListApprovedByItems(ctx context.Context, itemIDs []int64) ([]domain.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	wanted := make(map[int64]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Booking
	for _, booking := range s.bookings {
		if booking.Status != domain.BookingStatusApproved {
			continue
		}
		if _, ok := wanted[booking.ItemID]; ok {
			result = append(result, booking)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result, nil
}

func sortBookingsByStartDesc(bookings []domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].StartDate.After(bookings[j].StartDate)
	})
}
