package memory

import (
	"context"
	"sort"

	"github.com/shareit-app/lending-service/internal/domain"
)

type commentRepository struct {
	store *Store
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCommentID++
	comment.ID = s.nextCommentID
	s.comments[comment.ID] = *comment
	return nil
}

func (r *commentRepository) ListByItem(ctx context.Context, itemID int64) ([]domain.Comment, error) {
	return r.ListByItems(ctx, []int64{itemID})
}

func (r *commentRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]domain.Comment, error) {
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
	var result []domain.Comment
	for _, comment := range s.comments {
		if _, ok := wanted[comment.ItemID]; ok {
			result = append(result, comment)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
