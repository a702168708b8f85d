package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shareit-app/lending-service/internal/api/dto"
	"github.com/shareit-app/lending-service/internal/domain"
	"github.com/shareit-app/lending-service/internal/service"
	apperrors "github.com/shareit-app/lending-service/pkg/util"
)

// ItemsHandler exposes item and comment endpoints.
type ItemsHandler struct {
	items *service.ItemService
}

// NewItemsHandler constructs handler.
func NewItemsHandler(itemService *service.ItemService) *ItemsHandler {
	return &ItemsHandler{items: itemService}
}

// Create POST /items.
func (h *ItemsHandler) Create(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("name and description required", nil)
	}
	if req.Available == nil {
		return apperrors.NewValidationError("available required", nil)
	}

	item, err := h.items.Create(c.UserContext(), userID, service.ItemCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(itemResponse(item))
}

// Update PATCH /items/:itemId.
func (h *ItemsHandler) Update(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.items.Update(c.UserContext(), userID, itemID, service.ItemUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return err
	}
	return c.JSON(itemResponse(item))
}

// Get GET /items/:itemId.
func (h *ItemsHandler) Get(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	details, err := h.items.GetByID(c.UserContext(), userID, itemID)
	if err != nil {
		return err
	}
	return c.JSON(itemDetailResponse(details))
}

// ListByOwner GET /items.
func (h *ItemsHandler) ListByOwner(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	items, err := h.items.ListByOwner(c.UserContext(), userID)
	if err != nil {
		return err
	}
	result := make([]dto.ItemDetailResponse, 0, len(items))
	for i := range items {
		result = append(result, itemDetailResponse(&items[i]))
	}
	return c.JSON(result)
}

// Search GET /items/search?text=.
func (h *ItemsHandler) Search(c *fiber.Ctx) error {
	items, err := h.items.Search(c.UserContext(), c.Query("text"))
	if err != nil {
		return err
	}
	result := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		result = append(result, itemResponse(&items[i]))
	}
	return c.JSON(result)
}

// AddComment POST /items/:itemId/comment.
func (h *ItemsHandler) AddComment(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("text required", nil)
	}

	comment, err := h.items.AddComment(c.UserContext(), userID, itemID, req.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(commentResponse(comment))
}

func itemResponse(item *domain.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
	}
}

func itemDetailResponse(details *service.ItemDetails) dto.ItemDetailResponse {
	comments := make([]dto.CommentResponse, 0, len(details.Comments))
	for i := range details.Comments {
		comments = append(comments, commentResponse(&details.Comments[i]))
	}
	return dto.ItemDetailResponse{
		ID:          details.Item.ID,
		Name:        details.Item.Name,
		Description: details.Item.Description,
		Available:   details.Item.Available,
		RequestID:   details.Item.RequestID,
		LastBooking: bookingShortResponse(details.LastBooking),
		NextBooking: bookingShortResponse(details.NextBooking),
		Comments:    comments,
	}
}

func bookingShortResponse(ref *service.BookingRef) *dto.BookingShortResponse {
	if ref == nil {
		return nil
	}
	return &dto.BookingShortResponse{ID: ref.ID, BookerID: ref.BookerID}
}

func commentResponse(view *service.CommentView) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         view.Comment.ID,
		Text:       view.Comment.Text,
		AuthorName: view.AuthorName,
		Created:    view.Comment.CreatedAt,
	}
}
