package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shareit-app/lending-service/internal/api/dto"
	"github.com/shareit-app/lending-service/internal/domain"
	"github.com/shareit-app/lending-service/internal/service"
	apperrors "github.com/shareit-app/lending-service/pkg/util"
)

// UsersHandler exposes user management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return apperrors.NewValidationError("name and email required", nil)
	}
	if !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("email must be valid", nil)
	}

	user, err := h.users.Create(c.UserContext(), service.UserCreateInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

// Update PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		return apperrors.NewValidationError("email must be valid", nil)
	}

	user, err := h.users.Update(c.UserContext(), id, service.UserUpdateInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user))
}

// Get GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user))
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, userResponse(&users[i]))
	}
	return c.JSON(result)
}

// Delete DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
