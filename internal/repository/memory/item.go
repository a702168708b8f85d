package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/shareit-app/lending-service/internal/domain"
)

type itemRepository struct {
	store *Store
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextItemID++
	item.ID = s.nextItemID
	s.items[item.ID] = *item
	return nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.items[item.ID] = *item
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &item, nil
}

func (r *itemRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Item, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Item
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			result = append(result, item)
		}
	}
	sortItemsByID(result)
	return result, nil
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Item
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			result = append(result, item)
		}
	}
	sortItemsByID(result)
	return result, nil
}

func (r *itemRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]domain.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	wanted := make(map[int64]struct{}, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = struct{}{}
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Item
	for _, item := range s.items {
		if item.RequestID == nil {
			continue
		}
		if _, ok := wanted[*item.RequestID]; ok {
			result = append(result, item)
		}
	}
	sortItemsByID(result)
	return result, nil
}

func (r *itemRepository) Search(ctx context.Context, text string) ([]domain.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.Item{}, nil
	}
	lower := strings.ToLower(text)

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Item
	for _, item := range s.items {
		if !item.Available {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), lower) ||
			strings.Contains(strings.ToLower(item.Description), lower) {
			result = append(result, item)
		}
	}
	sortItemsByID(result)
	return result, nil
}

func sortItemsByID(items []domain.Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
