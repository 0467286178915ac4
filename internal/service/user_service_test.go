package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/permission"
	"github.com/sefazor/recipebook-backend/pkg/bcrypt"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserRepo, *fakeSubscriptionRepo) {
	t.Helper()

	users := newFakeUserRepo()
	subscriptions := newFakeSubscriptionRepo(users)
	return NewUserService(users, subscriptions), users, subscriptions
}

func TestGetUserSubscribedFlag(t *testing.T) {
	svc, users, subscriptions := newUserFixture(t)

	viewer := users.add(models.User{Username: "reader", Email: "reader@example.com"})
	author := users.add(models.User{Username: "chef", Email: "chef@example.com"})
	require.NoError(t, subscriptions.set.add(viewer.ID, author.ID))

	p := permission.Principal{UserID: viewer.ID, Authenticated: true}

	resp, err := svc.GetUser(context.Background(), author.ID, p)
	require.NoError(t, err)
	assert.True(t, resp.IsSubscribed)

	// Own profile never reports a self-subscription.
	self, err := svc.GetUser(context.Background(), viewer.ID, p)
	require.NoError(t, err)
	assert.False(t, self.IsSubscribed)

	// Anonymous viewers always see false.
	anon, err := svc.GetUser(context.Background(), author.ID, permission.Principal{})
	require.NoError(t, err)
	assert.False(t, anon.IsSubscribed)
}

func TestGetUserNotFound(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.GetUser(context.Background(), 404, permission.Principal{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, users, _ := newUserFixture(t)

	user := users.add(models.User{Username: "chef", Email: "chef@example.com", FirstName: "Ada", LastName: "Lovelace"})

	resp, err := svc.UpdateProfile(context.Background(), user.ID, models.UpdateProfileRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", resp.FirstName)
	assert.Equal(t, "Hopper", resp.LastName)
	// Identity fields stay put.
	assert.Equal(t, "chef", resp.Username)
	assert.Equal(t, "chef@example.com", resp.Email)
}

func TestChangePassword(t *testing.T) {
	svc, users, _ := newUserFixture(t)

	hashed, err := bcrypt.HashPassword("old-pass")
	require.NoError(t, err)
	user := users.add(models.User{Username: "chef", Email: "chef@example.com", Password: hashed})

	err = svc.ChangePassword(context.Background(), user.ID, models.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-pass",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), user.ID, models.ChangePasswordRequest{
		CurrentPassword: "old-pass",
		NewPassword:     "new-pass",
	})
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.ComparePassword(stored.Password, "new-pass"))
}
