package memory

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/shareit-app/lending-service/internal/domain"
)

type requestRepository struct {
	store *Store
}

func (r *requestRepository) Create(ctx context.Context, request *domain.ItemRequest) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRequestID++
	request.ID = s.nextRequestID
	s.requests[request.ID] = *request
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &request, nil
}

func (r *requestRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.ItemRequest
	for _, request := range s.requests {
		if request.RequestorID == requestorID {
			result = append(result, request)
		}
	}
	sortRequestsByCreatedDesc(result)
	return result, nil
}

func (r *requestRepository) ListOthers(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.ItemRequest
	for _, request := range s.requests {
		if request.RequestorID != requestorID {
			result = append(result, request)
		}
	}
	sortRequestsByCreatedDesc(result)
	return result, nil
}

func sortRequestsByCreatedDesc(requests []domain.ItemRequest) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}
