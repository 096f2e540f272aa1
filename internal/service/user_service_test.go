package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/repository/memory"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// racingUserRepo reports "not found" on the first lookup and a duplicate on
// insert, the way Mongo behaves when another request wins the insert.
type racingUserRepo struct {
	repository.UserRepository
	winner  domain.User
	lookups int
}

func (r *racingUserRepo) GetByUsername(_ context.Context, _ string) (*domain.User, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, repository.ErrNotFound
	}
	winner := r.winner
	return &winner, nil
}

func (r *racingUserRepo) Create(_ context.Context, _ *domain.User) (primitive.ObjectID, error) {
	return primitive.NilObjectID, repository.ErrDuplicate
}

type failingUserRepo struct {
	repository.UserRepository
	err error
}

func (r failingUserRepo) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, r.err
}

func (r failingUserRepo) GetByID(context.Context, primitive.ObjectID) (*domain.User, error) {
	return nil, r.err
}

func (r failingUserRepo) List(context.Context) ([]domain.User, error) {
	return nil, r.err
}

func TestCreateUserIsIdempotentByUsername(t *testing.T) {
	svc := NewUserService(memory.NewStore().Users())
	ctx := context.Background()

	first, err := svc.CreateUser(ctx, "alice")
	require.NoError(t, err)
	second, err := svc.CreateUser(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "alice", second.Username)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateUserTrimsUsername(t *testing.T) {
	svc := NewUserService(memory.NewStore().Users())

	user, err := svc.CreateUser(context.Background(), "  bob ")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
}

func TestCreateUserRejectsBlankUsername(t *testing.T) {
	svc := NewUserService(memory.NewStore().Users())

	for _, username := range []string{"", "   "} {
		_, err := svc.CreateUser(context.Background(), username)
		require.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "username is required")
	}
}

func TestCreateUserResolvesInsertRace(t *testing.T) {
	winner := domain.User{ID: primitive.NewObjectID(), Username: "alice"}
	repo := &racingUserRepo{winner: winner}
	svc := NewUserService(repo)

	user, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, user.ID)
	assert.Equal(t, 2, repo.lookups)
}

func TestCreateUserPropagatesRepositoryErrors(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewUserService(failingUserRepo{err: boom})

	_, err := svc.CreateUser(context.Background(), "alice")
	assert.ErrorIs(t, err, boom)

	_, err = svc.ListUsers(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestLookupUser(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	created, err := NewUserService(store.Users()).CreateUser(ctx, "carol")
	require.NoError(t, err)

	found, err := lookupUser(ctx, store.Users(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", found.Username)

	_, err = lookupUser(ctx, store.Users(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = lookupUser(ctx, store.Users(), primitive.NilObjectID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	boom := errors.New("connection reset")
	_, err = lookupUser(ctx, failingUserRepo{err: boom}, created.ID)
	assert.ErrorIs(t, err, boom)
}

func TestListUsersEmpty(t *testing.T) {
	svc := NewUserService(memory.NewStore().Users())

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}
