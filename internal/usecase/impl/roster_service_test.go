package impl

import (
	"context"
	"testing"
	"time"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterService_InviteUsers_DeduplicatesCaseInsensitively(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.expectEvent(entity.EventUserInvited, nil).Times(2)

	result, err := env.roster.InviteUsers(ctx, testScope, []string{"a@x.com", "A@X.com", "b@x.com"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Invalid)

	users, err := env.roster.ListUsers(ctx, testScope)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@x.com", users[0].Email)
	assert.Equal(t, "b@x.com", users[1].Email)
	for _, user := range users {
		assert.False(t, user.Registered)
		assert.False(t, user.PageSubmitted)
		assert.Equal(t, entity.RoleStudent, user.Role)
	}

	assert.Equal(t, []string{entity.RosterTopic(testScope), entity.RosterTopic(testScope)}, env.feed.topics())
}

func TestRosterService_InviteUsers_ReinviteIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.invite(t, testScope, "a@x.com")

	result, err := env.roster.InviteUsers(ctx, testScope, []string{" A@x.com "})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Skipped)

	users, err := env.roster.ListUsers(ctx, testScope)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRosterService_InviteUsers_ReportsInvalidAddresses(t *testing.T) {
	env := newTestEnv(t)
	env.publisher.expectEvent(entity.EventUserInvited, nil).Once()

	result, err := env.roster.InviteUsers(context.Background(), testScope, []string{"not-an-email", "ok@x.com", "a b@x.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, []string{"not-an-email", "a b@x.com"}, result.Invalid)
}

func TestRosterService_InviteUsers_PublishFailureDoesNotFail(t *testing.T) {
	env := newTestEnv(t)
	env.publisher.expectEvent(entity.EventUserInvited, errors.New("bus unavailable")).Once()

	result, err := env.roster.InviteUsers(context.Background(), testScope, []string{"a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
}

func TestRosterService_InviteUsers_InvalidScope(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.roster.InviteUsers(context.Background(), "only-school", []string{"a@x.com"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidScope)
}

func TestRosterService_ScopesAreIsolated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.invite(t, testClassScope, "a@x.com")

	yearUsers, err := env.roster.ListUsers(ctx, testScope)
	require.NoError(t, err)
	assert.Empty(t, yearUsers)

	_, err = env.roster.FindUserByEmail(ctx, testScope, "a@x.com")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	user, err := env.roster.FindUserByEmail(ctx, testClassScope, "A@X.COM")
	require.NoError(t, err)
	assert.Equal(t, testClassScope, user.Scope)
}

func TestRosterService_InviteUsers_EmailOwnedByAnotherScopeIsAConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.invite(t, testClassScope, "a@x.com")
	env.invite(t, testScope, "b@x.com")

	result, err := env.roster.InviteUsers(ctx, testScope, []string{"A@x.com", "b@x.com", "c@x.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Skipped, "only addresses already on this roster are skipped")
	assert.Equal(t, []string{"a@x.com"}, result.Conflicts)

	users, err := env.roster.ListUsers(ctx, testScope)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	scope, err := env.roster.FindUserScope(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, testClassScope, scope)
}

func TestRosterService_FindUserScope_NotInvited(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.roster.FindUserScope(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotInvited)
}

func TestRosterService_CompleteRegistration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.invite(t, testScope, "a@x.com")

	_, err := env.roster.CompleteRegistration(ctx, testScope, "missing@x.com", usecase.CompleteRegistrationInput{Name: "M"})
	require.ErrorIs(t, err, domainerrors.ErrNotInvited)

	user, err := env.roster.CompleteRegistration(ctx, testScope, "A@x.com", usecase.CompleteRegistrationInput{
		Name:     "  Ada  ",
		Phone:    "555",
		PhotoURL: "/uploads/profile-photos/ada.png",
	})
	require.NoError(t, err)
	assert.True(t, user.Registered)
	assert.NotNil(t, user.RegisteredAt)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "/uploads/profile-photos/ada.png", user.PhotoURL)

	_, err = env.roster.CompleteRegistration(ctx, testScope, "a@x.com", usecase.CompleteRegistrationInput{Name: "Ada"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyRegistered)
}

func TestRosterService_UpdateUser_UnlockBeatsDeadline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, testScope, "a@x.com", "Ada")

	locked := true
	_, err := env.roster.UpdateUser(ctx, testScope, user.ID, usecase.UpdateUserInput{PageSubmitted: &locked})
	require.NoError(t, err)
	env.setDeadline(t, testScope, time.Now().Add(-time.Hour))

	unlocked := false
	updated, err := env.roster.UpdateUser(ctx, testScope, user.ID, usecase.UpdateUserInput{PageSubmitted: &unlocked})
	require.NoError(t, err)
	assert.False(t, updated.PageSubmitted)

	me, err := env.pages.Me(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, me.Status.DeadlinePassed)
	assert.True(t, me.Status.CanEdit)
}

func TestRosterService_UpdateUser_PatchesProfileFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := env.invite(t, testScope, "a@x.com")

	name := "Grace"
	updated, err := env.roster.UpdateUser(ctx, testScope, users[0].ID, usecase.UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.Name)
	assert.Equal(t, "a@x.com", updated.Email)

	_, err = env.roster.UpdateUser(ctx, testScope, uuid.New(), usecase.UpdateUserInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	_, err = env.roster.UpdateUser(ctx, testClassScope, users[0].ID, usecase.UpdateUserInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestRosterService_DeleteUser_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := env.invite(t, testScope, "a@x.com")

	require.NoError(t, env.roster.DeleteUser(ctx, testScope, users[0].ID))
	require.NoError(t, env.roster.DeleteUser(ctx, testScope, users[0].ID))

	remaining, err := env.roster.ListUsers(ctx, testScope)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = env.roster.FindUserScope(ctx, "a@x.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotInvited)

	result, err := env.roster.InviteUsers(ctx, testScope, []string{"a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
}
