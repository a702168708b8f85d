package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shareit-app/lending-service/internal/domain"
	"github.com/shareit-app/lending-service/internal/events"
	"github.com/shareit-app/lending-service/internal/repository/memory"
	"github.com/shareit-app/lending-service/internal/service"
	"github.com/shareit-app/lending-service/pkg/util"
)

// testEnv wires all services against a shared in-memory store.
type testEnv struct {
	store    *memory.Store
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestService
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()

	return &testEnv{
		store: store,
		users: service.NewUserService(store.Users()),
		items: service.NewItemService(service.ItemDependencies{
			ItemRepo:    store.Items(),
			UserRepo:    store.Users(),
			BookingRepo: store.Bookings(),
			CommentRepo: store.Comments(),
			RequestRepo: store.Requests(),
			Dispatcher:  dispatcher,
		}),
		bookings: service.NewBookingService(service.BookingDependencies{
			BookingRepo: store.Bookings(),
			ItemRepo:    store.Items(),
			UserRepo:    store.Users(),
			Dispatcher:  dispatcher,
		}),
		requests: service.NewRequestService(service.RequestDependencies{
			RequestRepo: store.Requests(),
			UserRepo:    store.Users(),
			ItemRepo:    store.Items(),
			Dispatcher:  dispatcher,
		}),
	}
}

func (e *testEnv) mustUser(t *testing.T, name, email string) *domain.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), service.UserCreateInput{Name: name, Email: email})
	require.NoError(t, err)
	return user
}

func (e *testEnv) mustItem(t *testing.T, ownerID int64, name, description string, available bool) *domain.Item {
	t.Helper()
	item, err := e.items.Create(context.Background(), ownerID, service.ItemCreateInput{
		Name:        name,
		Description: description,
		Available:   available,
	})
	require.NoError(t, err)
	return item
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, util.ToDomainError(err).Code)
}
