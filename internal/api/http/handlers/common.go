package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/shareit-app/lending-service/pkg/util"
)

// HeaderUserID identifies the acting user on authenticated endpoints.
const HeaderUserID = "X-Sharer-User-Id"

func actingUserID(c *fiber.Ctx) (int64, error) {
	raw := c.Get(HeaderUserID)
	if raw == "" {
		return 0, apperrors.NewValidationError("X-Sharer-User-Id header required", nil)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("X-Sharer-User-Id header must be a positive integer", nil)
	}
	return id, nil
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name+" must be a positive integer", nil)
	}
	return id, nil
}
