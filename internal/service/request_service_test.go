package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-app/lending-service/internal/service"
)

func TestRequestCreate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requestor := env.mustUser(t, "Requestor", "requestor@example.com")

	view, err := env.requests.Create(ctx, requestor.ID, "  need a cordless drill  ")
	require.NoError(t, err)
	assert.NotZero(t, view.Request.ID)
	assert.Equal(t, "need a cordless drill", view.Request.Description)
	assert.Equal(t, requestor.ID, view.Request.RequestorID)
	assert.False(t, view.Request.CreatedAt.IsZero())
	assert.Empty(t, view.Items)

	_, err = env.requests.Create(ctx, 999, "anything")
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestRequestListOwnNewestFirst(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requestor := env.mustUser(t, "Requestor", "requestor@example.com")
	other := env.mustUser(t, "Other", "other@example.com")

	first, err := env.requests.Create(ctx, requestor.ID, "need a drill")
	require.NoError(t, err)
	second, err := env.requests.Create(ctx, requestor.ID, "need a ladder")
	require.NoError(t, err)
	_, err = env.requests.Create(ctx, other.ID, "need a saw")
	require.NoError(t, err)

	own, err := env.requests.ListOwn(ctx, requestor.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, second.Request.ID, own[0].Request.ID)
	assert.Equal(t, first.Request.ID, own[1].Request.ID)

	_, err = env.requests.ListOwn(ctx, 999)
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestRequestListOthersExcludesOwn(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requestor := env.mustUser(t, "Requestor", "requestor@example.com")
	other := env.mustUser(t, "Other", "other@example.com")

	_, err := env.requests.Create(ctx, requestor.ID, "need a drill")
	require.NoError(t, err)
	theirs, err := env.requests.Create(ctx, other.ID, "need a saw")
	require.NoError(t, err)

	others, err := env.requests.ListOthers(ctx, requestor.ID)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, theirs.Request.ID, others[0].Request.ID)
}

func TestRequestItemsAttached(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	requestor := env.mustUser(t, "Requestor", "requestor@example.com")
	owner := env.mustUser(t, "Owner", "owner@example.com")

	request, err := env.requests.Create(ctx, requestor.ID, "need a drill")
	require.NoError(t, err)

	offered, err := env.items.Create(ctx, owner.ID, service.ItemCreateInput{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   true,
		RequestID:   &request.Request.ID,
	})
	require.NoError(t, err)
	// unrelated item stays off the request
	env.mustItem(t, owner.ID, "Saw", "Hand saw", true)

	view, err := env.requests.GetByID(ctx, requestor.ID, request.Request.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, offered.ID, view.Items[0].ID)

	// any known user may read a request, not only the requestor
	view, err = env.requests.GetByID(ctx, owner.ID, request.Request.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	_, err = env.requests.GetByID(ctx, requestor.ID, 999)
	requireDomainCode(t, err, "NOT_FOUND")
	_, err = env.requests.GetByID(ctx, 999, request.Request.ID)
	requireDomainCode(t, err, "NOT_FOUND")
}
