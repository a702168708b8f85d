package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shareit-app/lending-service/internal/domain"
	"github.com/shareit-app/lending-service/internal/events"
	"github.com/shareit-app/lending-service/internal/repository"
	"github.com/shareit-app/lending-service/pkg/util"
)

// BookingService coordinates the booking approval workflow.
type BookingService struct {
	bookings   repository.BookingRepository
	items      repository.ItemRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// BookingDependencies bundles repositories for the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	ItemRepo    repository.ItemRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// BookingCreateInput describes booking creation payload.
type BookingCreateInput struct {
	ItemID    int64
	StartDate time.Time
	EndDate   time.Time
}

// BookingView is a booking together with the item and booker it references.
type BookingView struct {
	Booking domain.Booking
	Item    domain.Item
	Booker  domain.User
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:   deps.BookingRepo,
		items:      deps.ItemRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ParseBookingState converts a query value into a listing filter. An empty
// value means ALL.
func ParseBookingState(value string) (domain.BookingState, error) {
	if value == "" {
		return domain.BookingStateAll, nil
	}
	state := domain.BookingState(value)
	switch state {
	case domain.BookingStateAll, domain.BookingStateCurrent, domain.BookingStatePast,
		domain.BookingStateFuture, domain.BookingStateWaiting, domain.BookingStateRejected:
		return state, nil
	}
	return "", util.NewValidationError(fmt.Sprintf("unknown state: %s", value), nil)
}

// Create books an item on behalf of a user. The booking starts out WAITING.
func (s *BookingService) Create(ctx context.Context, bookerID int64, input BookingCreateInput) (*BookingView, error) {
	item, err := s.items.GetByID(ctx, input.ItemID)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("item", map[string]any{"id": input.ItemID})
		}
		return nil, err
	}
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": bookerID})
		}
		return nil, err
	}

	if item.OwnerID == bookerID {
		return nil, util.NewForbidden("cannot book your own item")
	}
	if !item.Available {
		return nil, util.NewValidationError("item is not available for booking", nil)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, util.NewValidationError("start and end dates are required", nil)
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, util.NewValidationError("end date must be after start date", nil)
	}
	if input.StartDate.Before(time.Now()) {
		return nil, util.NewValidationError("start date must not be in the past", nil)
	}

	booking := &domain.Booking{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		ItemID:    item.ID,
		BookerID:  booker.ID,
		Status:    domain.BookingStatusWaiting,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventBookingCreated,
		ActorID: bookerID,
		Payload: events.BookingCreatedPayload{
			BookingID: booking.ID,
			ItemID:    booking.ItemID,
			BookerID:  booking.BookerID,
			StartDate: booking.StartDate,
			EndDate:   booking.EndDate,
		},
	})

	return &BookingView{Booking: *booking, Item: *item, Booker: *booker}, nil
}

// Approve transitions a WAITING booking to APPROVED or REJECTED. Only the
// item's owner may decide, and only once.
func (s *BookingService) Approve(ctx context.Context, userID, bookingID int64, approved bool) (*BookingView, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("booking", map[string]any{"id": bookingID})
		}
		return nil, err
	}
	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, util.NewForbidden("only the item's owner may approve a booking")
	}
	if booking.Status != domain.BookingStatusWaiting {
		return nil, util.NewValidationError("booking already processed", nil)
	}

	oldStatus := booking.Status
	if approved {
		booking.Status = domain.BookingStatusApproved
	} else {
		booking.Status = domain.BookingStatusRejected
	}
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventBookingStatusChanged,
		ActorID: userID,
		Payload: events.BookingStatusChangedPayload{
			BookingID: booking.ID,
			ItemID:    booking.ItemID,
			OldStatus: oldStatus,
			NewStatus: booking.Status,
		},
	})

	return s.view(ctx, booking, item)
}

// GetByID fetches a booking visible to the booker or the item's owner.
func (s *BookingService) GetByID(ctx context.Context, userID, bookingID int64) (*BookingView, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("booking", map[string]any{"id": bookingID})
		}
		return nil, err
	}
	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != userID && item.OwnerID != userID {
		return nil, util.NewForbidden("access denied")
	}
	return s.view(ctx, booking, item)
}

// ListByBooker returns the user's bookings filtered by state, newest start first.
func (s *BookingService) ListByBooker(ctx context.Context, userID int64, state domain.BookingState) ([]BookingView, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}
	bookings, err := s.bookings.ListByBooker(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, filterByState(bookings, state, time.Now()))
}

// ListByItemOwner returns bookings of the user's items filtered by state,
// newest start first.
func (s *BookingService) ListByItemOwner(ctx context.Context, userID int64, state domain.BookingState) ([]BookingView, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}
	bookings, err := s.bookings.ListByItemOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, filterByState(bookings, state, time.Now()))
}

// filterByState classifies bookings against "now". A booking counts as CURRENT
// when start <= now < end, so one starting exactly now is CURRENT, not FUTURE.
func filterByState(bookings []domain.Booking, state domain.BookingState, now time.Time) []domain.Booking {
	if state == "" || state == domain.BookingStateAll {
		return bookings
	}
	filtered := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		switch state {
		case domain.BookingStateCurrent:
			if !b.StartDate.After(now) && b.EndDate.After(now) {
				filtered = append(filtered, b)
			}
		case domain.BookingStatePast:
			if b.EndDate.Before(now) {
				filtered = append(filtered, b)
			}
		case domain.BookingStateFuture:
			if b.StartDate.After(now) {
				filtered = append(filtered, b)
			}
		case domain.BookingStateWaiting:
			if b.Status == domain.BookingStatusWaiting {
				filtered = append(filtered, b)
			}
		case domain.BookingStateRejected:
			if b.Status == domain.BookingStatusRejected {
				filtered = append(filtered, b)
			}
		}
	}
	return filtered
}

func (s *BookingService) view(ctx context.Context, booking *domain.Booking, item *domain.Item) (*BookingView, error) {
	booker, err := s.users.GetByID(ctx, booking.BookerID)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": booking.BookerID})
		}
		return nil, err
	}
	return &BookingView{Booking: *booking, Item: *item, Booker: *booker}, nil
}

func (s *BookingService) views(ctx context.Context, bookings []domain.Booking) ([]BookingView, error) {
	itemIDs := make([]int64, 0, len(bookings))
	bookerIDs := make([]int64, 0, len(bookings))
	seenItems := make(map[int64]struct{})
	seenBookers := make(map[int64]struct{})
	for _, b := range bookings {
		if _, ok := seenItems[b.ItemID]; !ok {
			seenItems[b.ItemID] = struct{}{}
			itemIDs = append(itemIDs, b.ItemID)
		}
		if _, ok := seenBookers[b.BookerID]; !ok {
			seenBookers[b.BookerID] = struct{}{}
			bookerIDs = append(bookerIDs, b.BookerID)
		}
	}

	items, err := s.items.ListByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	bookers, err := s.users.ListByIDs(ctx, bookerIDs)
	if err != nil {
		return nil, err
	}

	itemsByID := make(map[int64]domain.Item, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}
	bookersByID := make(map[int64]domain.User, len(bookers))
	for _, booker := range bookers {
		bookersByID[booker.ID] = booker
	}

	result := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, BookingView{
			Booking: b,
			Item:    itemsByID[b.ItemID],
			Booker:  bookersByID[b.BookerID],
		})
	}
	return result, nil
}

func (s *BookingService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
