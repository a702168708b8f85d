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

// RequestService coordinates borrow-request workflows.
type RequestService struct {
	requests   repository.RequestRepository
	users      repository.UserRepository
	items      repository.ItemRepository
	dispatcher events.Dispatcher
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	UserRepo    repository.UserRepository
	ItemRepo    repository.ItemRepository
	Dispatcher  events.Dispatcher
}

// RequestView is a borrow request enriched with the items listed in response.
type RequestView struct {
	Request domain.ItemRequest
	Items   []domain.Item
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		users:      deps.UserRepo,
		items:      deps.ItemRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create records a borrow request for the given user.
func (s *RequestService) Create(ctx context.Context, userID int64, description string) (*RequestView, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}

	request := &domain.ItemRequest{
		Description: strings.TrimSpace(description),
		RequestorID: userID,
		CreatedAt:   time.Now(),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventRequestCreated,
			ActorID:   userID,
			Timestamp: time.Now(),
			Payload: events.RequestCreatedPayload{
				RequestID:   request.ID,
				RequestorID: request.RequestorID,
				Description: request.Description,
			},
		})
	}

	return &RequestView{Request: *request, Items: []domain.Item{}}, nil
}

// ListOwn returns the user's requests, newest first, with linked items.
func (s *RequestService) ListOwn(ctx context.Context, userID int64) ([]RequestView, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}
	requests, err := s.requests.ListByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, requests)
}

// ListOthers returns requests made by everyone except the user, newest first.
func (s *RequestService) ListOthers(ctx context.Context, userID int64) ([]RequestView, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}
	requests, err := s.requests.ListOthers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, requests)
}

// GetByID fetches a single request with its linked items.
func (s *RequestService) GetByID(ctx context.Context, userID, requestID int64) (*RequestView, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("request", map[string]any{"id": requestID})
		}
		return nil, err
	}
	views, err := s.views(ctx, []domain.ItemRequest{*request})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RequestService) views(ctx context.Context, requests []domain.ItemRequest) ([]RequestView, error) {
	requestIDs := make([]int64, 0, len(requests))
	for _, request := range requests {
		requestIDs = append(requestIDs, request.ID)
	}
	items, err := s.items.ListByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}
	itemsByRequest := make(map[int64][]domain.Item)
	for _, item := range items {
		if item.RequestID != nil {
			itemsByRequest[*item.RequestID] = append(itemsByRequest[*item.RequestID], item)
		}
	}

	result := make([]RequestView, 0, len(requests))
	for _, request := range requests {
		linked := itemsByRequest[request.ID]
		if linked == nil {
			linked = []domain.Item{}
		}
		result = append(result, RequestView{Request: request, Items: linked})
	}
	return result, nil
}
