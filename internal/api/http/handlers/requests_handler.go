package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shareit-app/lending-service/internal/api/dto"
	"github.com/shareit-app/lending-service/internal/service"
	apperrors "github.com/shareit-app/lending-service/pkg/util"
)

// RequestsHandler exposes borrow-request endpoints.
type RequestsHandler struct {
	requests *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{requests: requestService}
}

// Create POST /requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("description required", nil)
	}

	view, err := h.requests.Create(c.UserContext(), userID, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(requestResponse(view))
}

// ListOwn GET /requests.
func (h *RequestsHandler) ListOwn(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	views, err := h.requests.ListOwn(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(requestResponses(views))
}

// ListOthers GET /requests/all.
func (h *RequestsHandler) ListOthers(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	views, err := h.requests.ListOthers(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(requestResponses(views))
}

// Get GET /requests/:requestId.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return err
	}
	view, err := h.requests.GetByID(c.UserContext(), userID, requestID)
	if err != nil {
		return err
	}
	return c.JSON(requestResponse(view))
}

func requestResponse(view *service.RequestView) dto.RequestResponse {
	items := make([]dto.ItemResponse, 0, len(view.Items))
	for i := range view.Items {
		items = append(items, itemResponse(&view.Items[i]))
	}
	return dto.RequestResponse{
		ID:          view.Request.ID,
		Description: view.Request.Description,
		Created:     view.Request.CreatedAt,
		Items:       items,
	}
}

func requestResponses(views []service.RequestView) []dto.RequestResponse {
	result := make([]dto.RequestResponse, 0, len(views))
	for i := range views {
		result = append(result, requestResponse(&views[i]))
	}
	return result
}
