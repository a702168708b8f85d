package service

import (
	"context"
	"strings"

	"github.com/shareit-app/lending-service/internal/domain"
	"github.com/shareit-app/lending-service/internal/repository"
	"github.com/shareit-app/lending-service/pkg/util"
)

// UserService coordinates user workflows.
type UserService struct {
	users repository.UserRepository
}

// UserCreateInput describes registration payload.
type UserCreateInput struct {
	Name  string
	Email string
}

// UserUpdateInput describes a partial update; nil fields are left untouched.
type UserUpdateInput struct {
	Name  *string
	Email *string
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Create registers a new user, enforcing email uniqueness.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)
	if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, util.NewConflict("email already in use", map[string]any{"email": email})
	} else if err != nil && !util.IsNoRows(err) {
		return nil, err
	}

	user := &domain.User{
		Name:  strings.TrimSpace(input.Name),
		Email: email,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies the supplied fields to an existing user.
func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		existing, err := s.users.GetByEmail(ctx, email)
		if err != nil && !util.IsNoRows(err) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, util.NewConflict("email already in use", map[string]any{"email": email})
		}
		user.Email = email
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// GetByID fetches a single user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// List returns all registered users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Delete removes a user unconditionally. Entities referencing the user are not
// touched; the backing schema accepts the orphaned references.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if util.IsNoRows(err) {
			return util.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
