package service

import (
	"context"
	"strings"
	"time"

	"github.com/shareit-app/lending-service/internal/domain"
	"github.com/shareit-app/lending-service/internal/events"
	"github.com/shareit-app/lending-service/internal/repository"
	"github.com/shareit-app/lending-service/pkg/util"
)

// ItemService coordinates item and comment workflows.
type ItemService struct {
	items      repository.ItemRepository
	users      repository.UserRepository
	bookings   repository.BookingRepository
	comments   repository.CommentRepository
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
}

// ItemDependencies bundles repositories for the item service.
type ItemDependencies struct {
	ItemRepo    repository.ItemRepository
	UserRepo    repository.UserRepository
	BookingRepo repository.BookingRepository
	CommentRepo repository.CommentRepository
	RequestRepo repository.RequestRepository
	Dispatcher  events.Dispatcher
}

// ItemCreateInput describes item creation payload.
type ItemCreateInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// ItemUpdateInput describes a partial update; nil fields are left untouched.
type ItemUpdateInput struct {
	Name        *string
	Description *string
	Available   *bool
}

// BookingRef is the short booking reference exposed on enriched items.
type BookingRef struct {
	ID       int64
	BookerID int64
}

// CommentView is a comment together with its author's name.
type CommentView struct {
	Comment    domain.Comment
	AuthorName string
}

// ItemDetails is an item enriched with its booking horizon and comments.
// LastBooking and NextBooking are populated only for the item's owner.
type ItemDetails struct {
	Item        domain.Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []CommentView
}

// NewItemService constructs the service.
func NewItemService(deps ItemDependencies) *ItemService {
	return &ItemService{
		items:      deps.ItemRepo,
		users:      deps.UserRepo,
		bookings:   deps.BookingRepo,
		comments:   deps.CommentRepo,
		requests:   deps.RequestRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create lists a new item owned by ownerID, optionally linked to a borrow request.
func (s *ItemService) Create(ctx context.Context, ownerID int64, input ItemCreateInput) (*domain.Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": ownerID})
		}
		return nil, err
	}
	if input.RequestID != nil {
		if _, err := s.requests.GetByID(ctx, *input.RequestID); err != nil {
			if util.IsNoRows(err) {
				return nil, util.NewNotFound("request", map[string]any{"id": *input.RequestID})
			}
			return nil, err
		}
	}

	item := &domain.Item{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Available:   input.Available,
		OwnerID:     ownerID,
		RequestID:   input.RequestID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventItemCreated,
		ActorID: ownerID,
		Payload: events.ItemCreatedPayload{
			ItemID:    item.ID,
			OwnerID:   item.OwnerID,
			Name:      item.Name,
			RequestID: item.RequestID,
		},
	})
	return item, nil
}

// Update applies the supplied fields; only the owner may modify an item.
func (s *ItemService) Update(ctx context.Context, userID, itemID int64, input ItemUpdateInput) (*domain.Item, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, util.NewForbidden("only the item's owner may update it")
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID fetches one item with comments; booking references are included only
// when the requester owns the item.
func (s *ItemService) GetByID(ctx context.Context, userID, itemID int64) (*ItemDetails, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details, err := s.enrich(ctx, []domain.Item{*item}, userID == item.OwnerID)
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListByOwner returns the owner's items, each enriched with booking references
// and comments. Bookings and comments are fetched in batch across all items.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]ItemDetails, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": ownerID})
		}
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, items, true)
}

// Search returns available items matching text in name or description,
// case-insensitively. Blank text yields an empty list.
func (s *ItemService) Search(ctx context.Context, text string) ([]domain.Item, error) {
	items, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

// AddComment records feedback on an item. The author must have at least one
// APPROVED booking of the item that already ended.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID int64, text string) (*CommentView, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}

	bookings, err := s.bookings.ListByBooker(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	finished := false
	for _, b := range bookings {
		if b.ItemID == item.ID && b.Status == domain.BookingStatusApproved && b.EndDate.Before(now) {
			finished = true
			break
		}
	}
	if !finished {
		return nil, util.NewValidationError("comments are allowed only after a finished rental of the item", nil)
	}

	comment := &domain.Comment{
		Text:      strings.TrimSpace(text),
		ItemID:    item.ID,
		AuthorID:  author.ID,
		CreatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventCommentAdded,
		ActorID: userID,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			ItemID:      comment.ItemID,
			AuthorID:    comment.AuthorID,
			TextPreview: textPreview(comment.Text, 120),
		},
	})
	return &CommentView{Comment: *comment, AuthorName: author.Name}, nil
}

func (s *ItemService) getItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("item", map[string]any{"id": itemID})
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) enrich(ctx context.Context, items []domain.Item, withBookings bool) ([]ItemDetails, error) {
	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	comments, err := s.comments.ListByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	authorNames, err := s.authorNames(ctx, comments)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]CommentView)
	for _, comment := range comments {
		commentsByItem[comment.ItemID] = append(commentsByItem[comment.ItemID], CommentView{
			Comment:    comment,
			AuthorName: authorNames[comment.AuthorID],
		})
	}

	var approvedByItem map[int64][]domain.Booking
	if withBookings {
		approved, err := s.bookings.ListApprovedByItems(ctx, itemIDs)
		if err != nil {
			return nil, err
		}
		approvedByItem = make(map[int64][]domain.Booking)
		for _, booking := range approved {
			approvedByItem[booking.ItemID] = append(approvedByItem[booking.ItemID], booking)
		}
	}

	now := time.Now()
	result := make([]ItemDetails, 0, len(items))
	for _, item := range items {
		details := ItemDetails{
			Item:     item,
			Comments: commentsByItem[item.ID],
		}
		if details.Comments == nil {
			details.Comments = []CommentView{}
		}
		if withBookings {
			details.LastBooking, details.NextBooking = bookingHorizon(approvedByItem[item.ID], now)
		}
		result = append(result, details)
	}
	return result, nil
}

// bookingHorizon picks the most recent booking already started and the nearest
// booking yet to start. Input is sorted by start date ascending.
func bookingHorizon(approved []domain.Booking, now time.Time) (last, next *BookingRef) {
	for i := range approved {
		b := approved[i]
		if !b.StartDate.After(now) {
			last = &BookingRef{ID: b.ID, BookerID: b.BookerID}
		} else if next == nil {
			next = &BookingRef{ID: b.ID, BookerID: b.BookerID}
		}
	}
	return last, next
}

func (s *ItemService) authorNames(ctx context.Context, comments []domain.Comment) (map[int64]string, error) {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0, len(comments))
	for _, comment := range comments {
		if _, ok := seen[comment.AuthorID]; !ok {
			seen[comment.AuthorID] = struct{}{}
			ids = append(ids, comment.AuthorID)
		}
	}
	authors, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(authors))
	for _, author := range authors {
		names[author.ID] = author.Name
	}
	return names, nil
}

func (s *ItemService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func textPreview(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max]
}
