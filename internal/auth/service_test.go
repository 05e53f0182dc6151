package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"store-it/internal/models"
	"store-it/internal/utils"
)

type fakeUserStore struct {
	byUsername map[string]*models.User
	createErr  error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byUsername: map[string]*models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byUsername[u.Username]; ok {
		return utils.ErrConflict
	}
	cp := *u
	f.byUsername[u.Username] = &cp
	return nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Update(_ context.Context, u *models.User) error {
	for name, existing := range f.byUsername {
		if existing.ID == u.ID {
			cp := *u
			f.byUsername[name] = &cp
			return nil
		}
	}
	return utils.ErrUserNotFound
}

func newTestService(t *testing.T) (*Service, *fakeUserStore, *fakeSessionStore) {
	t.Helper()
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	log := zap.NewNop().Sugar()
	return NewService(users, NewSessionManager(sessions, log), log), users, sessions
}

func TestSignupThenLogin(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "Ann", "ann1", "pass1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "ann1", user.Username)
	assert.Empty(t, user.Password, "returned user must not carry the hash")

	stored := users.byUsername["ann1"]
	assert.NotEqual(t, "pass1234", stored.Password, "plaintext must never be persisted")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pass1234")))

	loggedIn, token2, err := svc.Login(ctx, "ann1", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.Password)
	assert.NotEqual(t, token, token2, "login issues a fresh session")
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Ann", "ann1", "pass1234")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "nobody", "pass1234")
	assert.ErrorIs(t, err, utils.ErrUserNotFound)

	_, _, err = svc.Login(ctx, "ann1", "wrongpass1")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Ann", "ann1", "pass1234")
	require.NoError(t, err)

	// fast-path pre-check
	_, _, err = svc.Signup(ctx, "Other Ann", "ann1", "pass5678")
	assert.ErrorIs(t, err, utils.ErrConflict)

	// store-level unique constraint wins the check-then-act race
	delete(users.byUsername, "ann1")
	users.createErr = utils.ErrConflict
	_, _, err = svc.Signup(ctx, "Racer", "ann1", "pass5678")
	assert.ErrorIs(t, err, utils.ErrConflict)
}

func TestUpdateProfile(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, "Ann", "ann1", "pass1234")
	require.NoError(t, err)
	oldHash := users.byUsername["ann1"].Password

	updated, err := svc.UpdateProfile(ctx, user.ID, "Annabel", "newpass99")
	require.NoError(t, err)
	assert.Equal(t, "Annabel", updated.Name)
	assert.Empty(t, updated.Password)

	newHash := users.byUsername["ann1"].Password
	assert.NotEqual(t, oldHash, newHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpass99")))

	_, err = svc.UpdateProfile(ctx, "ghost", "X", "")
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}
