package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-app/lending-service/internal/service"
)

func TestUserCreateAndGetRoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created := env.mustUser(t, "Alice", "alice@example.com")
	require.NotZero(t, created.ID)

	fetched, err := env.users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", fetched.Name)
	assert.Equal(t, "alice@example.com", fetched.Email)

	again, err := env.users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, fetched, again)
}

func TestUserCreateDuplicateEmailConflict(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	original := env.mustUser(t, "Alice", "alice@example.com")

	_, err := env.users.Create(ctx, service.UserCreateInput{Name: "Impostor", Email: "alice@example.com"})
	requireDomainCode(t, err, "CONFLICT")

	unchanged, err := env.users.GetByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", unchanged.Name)
}

func TestUserPartialUpdate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	user := env.mustUser(t, "Alice", "alice@example.com")

	newName := "Alicia"
	updated, err := env.users.Update(ctx, user.ID, service.UserUpdateInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	newEmail := "alicia@example.com"
	updated, err = env.users.Update(ctx, user.ID, service.UserUpdateInput{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alicia@example.com", updated.Email)
}

func TestUserUpdateEmailTakenByOther(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.mustUser(t, "Alice", "alice@example.com")
	bob := env.mustUser(t, "Bob", "bob@example.com")

	taken := "alice@example.com"
	_, err := env.users.Update(ctx, bob.ID, service.UserUpdateInput{Email: &taken})
	requireDomainCode(t, err, "CONFLICT")

	// re-submitting your own email is not a conflict
	own := "bob@example.com"
	_, err = env.users.Update(ctx, bob.ID, service.UserUpdateInput{Email: &own})
	require.NoError(t, err)
}

func TestUserUpdateUnknownNotFound(t *testing.T) {
	env := newTestEnv()

	name := "Ghost"
	_, err := env.users.Update(context.Background(), 42, service.UserUpdateInput{Name: &name})
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestUserDelete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	user := env.mustUser(t, "Alice", "alice@example.com")

	require.NoError(t, env.users.Delete(ctx, user.ID))

	_, err := env.users.GetByID(ctx, user.ID)
	requireDomainCode(t, err, "NOT_FOUND")

	requireDomainCode(t, env.users.Delete(ctx, user.ID), "NOT_FOUND")
}

func TestUserList(t *testing.T) {
	env := newTestEnv()

	env.mustUser(t, "Alice", "alice@example.com")
	env.mustUser(t, "Bob", "bob@example.com")

	users, err := env.users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}
