package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/shareit-app/lending-service/internal/api/http"
	"github.com/shareit-app/lending-service/internal/api/http/handlers"
	"github.com/shareit-app/lending-service/internal/domain"
	"github.com/shareit-app/lending-service/internal/events"
	"github.com/shareit-app/lending-service/internal/observability"
	"github.com/shareit-app/lending-service/internal/repository/memory"
	"github.com/shareit-app/lending-service/internal/service"
)

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

func newTestServer() *testServer {
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	userService := service.NewUserService(store.Users())
	itemService := service.NewItemService(service.ItemDependencies{
		ItemRepo:    store.Items(),
		UserRepo:    store.Users(),
		BookingRepo: store.Bookings(),
		CommentRepo: store.Comments(),
		RequestRepo: store.Requests(),
		Dispatcher:  dispatcher,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: store.Bookings(),
		ItemRepo:    store.Items(),
		UserRepo:    store.Users(),
		Dispatcher:  dispatcher,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: store.Requests(),
		UserRepo:    store.Users(),
		ItemRepo:    store.Items(),
		Dispatcher:  dispatcher,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler("lending-service", "test", nil, nil),
		Users:    handlers.NewUsersHandler(userService),
		Items:    handlers.NewItemsHandler(itemService),
		Bookings: handlers.NewBookingsHandler(bookingService),
		Requests: handlers.NewRequestsHandler(requestService),
	})

	return &testServer{app: app, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, userID int64, body any) (int, map[string]any) {
	t.Helper()
	status, raw := s.doRaw(t, method, path, userID, body)
	if len(raw) == 0 {
		return status, nil
	}
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return status, decoded
}

func (s *testServer) doList(t *testing.T, method, path string, userID int64) (int, []map[string]any) {
	t.Helper()
	status, raw := s.doRaw(t, method, path, userID, nil)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return status, decoded
}

func (s *testServer) doRaw(t *testing.T, method, path string, userID int64, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set(handlers.HeaderUserID, fmt.Sprintf("%d", userID))
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (s *testServer) createUser(t *testing.T, name, email string) int64 {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/users", 0, map[string]any{"name": name, "email": email})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)
	return int64(body["id"].(float64))
}

func (s *testServer) createItem(t *testing.T, ownerID int64, name, description string, available bool) int64 {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/items", ownerID, map[string]any{
		"name":        name,
		"description": description,
		"available":   available,
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)
	return int64(body["id"].(float64))
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "body: %v", body)
	return errObj["code"].(string)
}

func TestHealthLive(t *testing.T) {
	srv := newTestServer()
	status, body := srv.do(t, http.MethodGet, "/health/live", 0, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alive", body["status"])
}

func TestUserEndpoints(t *testing.T) {
	srv := newTestServer()

	id := srv.createUser(t, "Alice", "alice@example.com")

	status, body := srv.do(t, http.MethodPost, "/users", 0, map[string]any{"name": "Clone", "email": "alice@example.com"})
	require.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorCode(t, body))

	status, body = srv.do(t, http.MethodPost, "/users", 0, map[string]any{"name": "NoAt", "email": "not-an-email"})
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, body))

	status, body = srv.do(t, http.MethodPatch, fmt.Sprintf("/users/%d", id), 0, map[string]any{"name": "Alicia"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Alicia", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])

	status, _ = srv.doRaw(t, http.MethodDelete, fmt.Sprintf("/users/%d", id), 0, nil)
	require.Equal(t, fiber.StatusNoContent, status)

	status, body = srv.do(t, http.MethodGet, fmt.Sprintf("/users/%d", id), 0, nil)
	require.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestItemEndpointsRequireIdentityHeader(t *testing.T) {
	srv := newTestServer()

	status, body := srv.do(t, http.MethodPost, "/items", 0, map[string]any{
		"name": "Drill", "description": "Cordless", "available": true,
	})
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, body))
}

func TestItemSearchEndpoint(t *testing.T) {
	srv := newTestServer()
	owner := srv.createUser(t, "Owner", "owner@example.com")
	viewer := srv.createUser(t, "Viewer", "viewer@example.com")
	srv.createItem(t, owner, "Drill", "Cordless drill", true)
	srv.createItem(t, owner, "Old drill", "Retired", false)

	status, found := srv.doList(t, http.MethodGet, "/items/search?text=DRILL", viewer)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, found, 1)
	assert.Equal(t, "Drill", found[0]["name"])

	status, found = srv.doList(t, http.MethodGet, "/items/search?text=", viewer)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, found)
}

func TestBookingLifecycleEndpoints(t *testing.T) {
	srv := newTestServer()
	owner := srv.createUser(t, "Owner", "owner@example.com")
	booker := srv.createUser(t, "Booker", "booker@example.com")
	stranger := srv.createUser(t, "Stranger", "stranger@example.com")
	itemID := srv.createItem(t, owner, "Drill", "Cordless drill", true)

	start := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339Nano)
	end := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339Nano)

	status, body := srv.do(t, http.MethodPost, "/bookings", booker, map[string]any{
		"itemId": itemID, "start": start, "end": end,
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)
	assert.Equal(t, "WAITING", body["status"])
	bookingID := int64(body["id"].(float64))

	bookerRef := body["booker"].(map[string]any)
	assert.Equal(t, float64(booker), bookerRef["id"])
	itemRef := body["item"].(map[string]any)
	assert.Equal(t, "Drill", itemRef["name"])

	// owner booking their own item is rejected
	status, body = srv.do(t, http.MethodPost, "/bookings", owner, map[string]any{
		"itemId": itemID, "start": start, "end": end,
	})
	require.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	status, body = srv.do(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", bookingID), stranger, nil)
	require.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	status, body = srv.do(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", bookingID), owner, nil)
	require.Equal(t, fiber.StatusOK, status, "body: %v", body)
	assert.Equal(t, "APPROVED", body["status"])

	status, body = srv.do(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=false", bookingID), owner, nil)
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, body))

	status, _ = srv.do(t, http.MethodGet, fmt.Sprintf("/bookings/%d", bookingID), booker, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, body = srv.do(t, http.MethodGet, fmt.Sprintf("/bookings/%d", bookingID), stranger, nil)
	require.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	status, list := srv.doList(t, http.MethodGet, "/bookings?state=ALL", booker)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, list, 1)

	status, list = srv.doList(t, http.MethodGet, "/bookings/owner?state=WAITING", owner)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, list)

	status, body = srv.do(t, http.MethodGet, "/bookings?state=SOMEDAY", booker, nil)
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, body))
}

func TestCommentEndpoint(t *testing.T) {
	srv := newTestServer()
	owner := srv.createUser(t, "Owner", "owner@example.com")
	booker := srv.createUser(t, "Booker", "booker@example.com")
	itemID := srv.createItem(t, owner, "Drill", "Cordless drill", true)

	status, body := srv.do(t, http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), booker, map[string]any{
		"text": "Great drill",
	})
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, body))

	// a finished rental unlocks commenting
	now := time.Now()
	finished := &domain.Booking{
		StartDate: now.Add(-48 * time.Hour),
		EndDate:   now.Add(-24 * time.Hour),
		ItemID:    itemID,
		BookerID:  booker,
		Status:    domain.BookingStatusApproved,
	}
	require.NoError(t, srv.store.Bookings().Create(context.Background(), finished))

	status, body = srv.do(t, http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), booker, map[string]any{
		"text": "Great drill",
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)
	assert.Equal(t, "Great drill", body["text"])
	assert.Equal(t, "Booker", body["authorName"])
	assert.NotEmpty(t, body["created"])

	status, body = srv.do(t, http.MethodGet, fmt.Sprintf("/items/%d", itemID), owner, nil)
	require.Equal(t, fiber.StatusOK, status)
	comments := body["comments"].([]any)
	require.Len(t, comments, 1)
	require.NotNil(t, body["lastBooking"])
	lastBooking := body["lastBooking"].(map[string]any)
	assert.Equal(t, float64(booker), lastBooking["bookerId"])

	// non-owner view hides the booking horizon
	status, body = srv.do(t, http.MethodGet, fmt.Sprintf("/items/%d", itemID), booker, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Nil(t, body["lastBooking"])
}

func TestRequestEndpoints(t *testing.T) {
	srv := newTestServer()
	requestor := srv.createUser(t, "Requestor", "requestor@example.com")
	owner := srv.createUser(t, "Owner", "owner@example.com")

	status, body := srv.do(t, http.MethodPost, "/requests", requestor, map[string]any{
		"description": "need a drill",
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)
	requestID := int64(body["id"].(float64))
	assert.Equal(t, "need a drill", body["description"])
	assert.NotEmpty(t, body["created"])

	status, itemBody := srv.do(t, http.MethodPost, "/items", owner, map[string]any{
		"name":        "Drill",
		"description": "Cordless drill",
		"available":   true,
		"requestId":   requestID,
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", itemBody)

	status, own := srv.doList(t, http.MethodGet, "/requests", requestor)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, own, 1)
	items := own[0]["items"].([]any)
	require.Len(t, items, 1)

	status, others := srv.doList(t, http.MethodGet, "/requests/all", owner)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, others, 1)

	status, others = srv.doList(t, http.MethodGet, "/requests/all", requestor)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, others)

	status, body = srv.do(t, http.MethodGet, "/requests/999", requestor, nil)
	require.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}
