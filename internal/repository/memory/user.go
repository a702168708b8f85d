package memory

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/shareit-app/lending-service/internal/domain"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = *user
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			result = append(result, user)
		}
	}
	return result, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.users, id)
	return nil
}
