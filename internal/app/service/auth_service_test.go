package service

import (
	"context"
	"fmt"
	"testing"

	"career_compass_v2/internal/common"
	"career_compass_v2/internal/common/security"
	"career_compass_v2/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
	}
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

func (f *fakeUserRepo) GetReflectionNotes(ctx context.Context, id int64) (string, error) {
	u, ok := f.users[id]
	if !ok {
		return "", common.ErrNotFound
	}
	return u.ReflectionNotes, nil
}

func (f *fakeUserRepo) UpdateReflectionNotes(ctx context.Context, id int64, notes string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.ReflectionNotes = notes
	return nil
}

func registerTestUser(t *testing.T, repo *fakeUserRepo, username, email, password string) *model.User {
	t.Helper()
	user, err := NewAuthService(repo).Register(context.Background(), RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

// --- Register ---

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.HashedPassword, "hash must not leak out of the service")

	// The stored hash verifies against the plaintext and is not the plaintext
	stored := repo.users[user.ID]
	assert.NotEqual(t, "secret1", stored.HashedPassword)
	assert.True(t, security.CheckPasswordHash("secret1", stored.HashedPassword))
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	for _, req := range []RegisterRequest{
		{Username: "", Email: "a@x.com", Password: "secret1"},
		{Username: "alice", Email: "", Password: "secret1"},
		{Username: "alice", Email: "a@x.com", Password: ""},
		{Username: "   ", Email: "a@x.com", Password: "secret1"},
	} {
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, common.ErrBadRequest)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	registerTestUser(t, repo, "alice", "a@x.com", "secret1")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice", Email: "other@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Username: "bob", Email: "a@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, common.ErrConflict)
}

// --- Login ---

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	registerTestUser(t, repo, "alice", "a@x.com", "secret1")

	user, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.HashedPassword)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	registerTestUser(t, repo, "alice", "a@x.com", "secret1")

	// Unknown user and wrong password must be indistinguishable
	_, errUnknown := svc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "whatever"})
	_, errWrongPw := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, errUnknown, common.ErrUnauthorized)
	assert.ErrorIs(t, errWrongPw, common.ErrUnauthorized)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLoginMissingFields(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), LoginRequest{Username: "", Password: "secret1"})
	assert.ErrorIs(t, err, common.ErrBadRequest)

	_, err = svc.Login(context.Background(), LoginRequest{Username: "alice", Password: ""})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

// --- ChangePassword ---

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	user := registerTestUser(t, repo, "alice", "a@x.com", "secret1")

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "newsecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "newsecret"})
	assert.NoError(t, err)
	_, err = svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "secret1"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	user := registerTestUser(t, repo, "alice", "a@x.com", "secret1")
	before := repo.users[user.ID].HashedPassword

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, before, repo.users[user.ID].HashedPassword, "hash must be untouched")
}

func TestChangePasswordTooShort(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	user := registerTestUser(t, repo, "alice", "a@x.com", "secret1")
	before := repo.users[user.ID].HashedPassword

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "short",
	})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, before, repo.users[user.ID].HashedPassword, "hash must be untouched")
}
