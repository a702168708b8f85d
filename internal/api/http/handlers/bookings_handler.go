package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/shareit-app/lending-service/internal/api/dto"
	"github.com/shareit-app/lending-service/internal/service"
	apperrors "github.com/shareit-app/lending-service/pkg/util"
)

// BookingsHandler exposes booking endpoints.
type BookingsHandler struct {
	bookings *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookingService}
}

// Create POST /bookings.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ItemID == nil {
		return apperrors.NewValidationError("itemId required", nil)
	}
	if req.Start == nil || req.End == nil {
		return apperrors.NewValidationError("start and end required", nil)
	}

	view, err := h.bookings.Create(c.UserContext(), userID, service.BookingCreateInput{
		ItemID:    *req.ItemID,
		StartDate: *req.Start,
		EndDate:   *req.End,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(bookingResponse(view))
}

// Approve PATCH /bookings/:bookingId?approved=.
func (h *BookingsHandler) Approve(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return err
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		return apperrors.NewValidationError("approved query parameter must be true or false", nil)
	}

	view, err := h.bookings.Approve(c.UserContext(), userID, bookingID, approved)
	if err != nil {
		return err
	}
	return c.JSON(bookingResponse(view))
}

// Get GET /bookings/:bookingId.
func (h *BookingsHandler) Get(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return err
	}
	view, err := h.bookings.GetByID(c.UserContext(), userID, bookingID)
	if err != nil {
		return err
	}
	return c.JSON(bookingResponse(view))
}

// ListByBooker GET /bookings?state=.
func (h *BookingsHandler) ListByBooker(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	state, err := service.ParseBookingState(c.Query("state"))
	if err != nil {
		return err
	}
	views, err := h.bookings.ListByBooker(c.UserContext(), userID, state)
	if err != nil {
		return err
	}
	return c.JSON(bookingResponses(views))
}

// ListByOwner GET /bookings/owner?state=.
func (h *BookingsHandler) ListByOwner(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	state, err := service.ParseBookingState(c.Query("state"))
	if err != nil {
		return err
	}
	views, err := h.bookings.ListByItemOwner(c.UserContext(), userID, state)
	if err != nil {
		return err
	}
	return c.JSON(bookingResponses(views))
}

func bookingResponse(view *service.BookingView) dto.BookingResponse {
	return dto.BookingResponse{
		ID:     view.Booking.ID,
		Start:  view.Booking.StartDate,
		End:    view.Booking.EndDate,
		Status: view.Booking.Status,
		Booker: dto.BookerResponse{ID: view.Booker.ID, Name: view.Booker.Name},
		Item:   dto.BookedItemResponse{ID: view.Item.ID, Name: view.Item.Name},
	}
}

func bookingResponses(views []service.BookingView) []dto.BookingResponse {
	result := make([]dto.BookingResponse, 0, len(views))
	for i := range views {
		result = append(result, bookingResponse(&views[i]))
	}
	return result
}
