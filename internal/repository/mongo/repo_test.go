package mongo

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns an id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoUserRepository(mt.DB)

		user := &domain.User{Username: "alice"}
		id, err := repo.Create(context.Background(), user)
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
		assert.Equal(mt, user.ID, id)
	})

	mt.Run("create maps duplicate key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: username_unique",
		}))
		repo := NewMongoUserRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.User{Username: "alice"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("create rejects empty username", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		_, err := repo.Create(context.Background(), &domain.User{})
		assert.Error(mt, err)
	})

	mt.Run("get by username", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "username", Value: "alice"},
		}))
		repo := NewMongoUserRepository(mt.DB)

		user, err := repo.GetByUsername(context.Background(), "alice")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "alice", user.Username)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, "alice", filter.Lookup("username").StringValue())
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".users", mtest.FirstBatch))
		repo := NewMongoUserRepository(mt.DB)

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("get by id propagates server errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
		}))
		repo := NewMongoUserRepository(mt.DB)

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("list projects id and username", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".users"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "username", Value: "alice"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "username", Value: "bob"}},
		))
		repo := NewMongoUserRepository(mt.DB)

		users, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, "alice", users[0].Username)
		assert.Equal(mt, "bob", users[1].Username)

		projection := mt.GetStartedEvent().Command.Lookup("projection").Document()
		assert.Len(mt, mustElements(mt, projection), 2)
	})

	mt.Run("list empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".users", mtest.FirstBatch))
		repo := NewMongoUserRepository(mt.DB)

		users, err := repo.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, users)
		assert.Empty(mt, users)
	})
}

func TestMongoExerciseRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create stores the given date", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoExerciseRepository(mt.DB)

		// The zero time is a real, caller-supplied date (0001-01-01), not "unset".
		exercise := &domain.Exercise{UserID: primitive.NewObjectID(), Description: "run", Duration: 30}
		id, err := repo.Create(context.Background(), exercise)
		require.NoError(mt, err)
		assert.Equal(mt, exercise.ID, id)
		assert.True(mt, exercise.Date.IsZero())
	})

	mt.Run("create requires a user", func(mt *mtest.T) {
		repo := NewMongoExerciseRepository(mt.DB)
		_, err := repo.Create(context.Background(), &domain.Exercise{Description: "run", Duration: 30})
		assert.Error(mt, err)
	})

	mt.Run("get by user applies range and limit", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		day := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".exercises", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "userId", Value: userID},
			{Key: "description", Value: "run"},
			{Key: "duration", Value: 30.0},
			{Key: "date", Value: primitive.NewDateTimeFromTime(day)},
		}))
		repo := NewMongoExerciseRepository(mt.DB)

		from := day
		to := day.AddDate(0, 0, 1)
		exercises, err := repo.GetByUserID(context.Background(), userID, repository.ExerciseFilter{From: &from, To: &to, Limit: 2})
		require.NoError(mt, err)
		require.Len(mt, exercises, 1)
		assert.Equal(mt, "run", exercises[0].Description)
		assert.Equal(mt, 30.0, exercises[0].Duration)
		assert.True(mt, exercises[0].Date.Equal(day))

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, int64(2), cmd.Lookup("limit").AsInt64())
		filter := cmd.Lookup("filter").Document()
		assert.Equal(mt, userID, filter.Lookup("userId").ObjectID())
		dateRange := filter.Lookup("date").Document()
		assert.True(mt, dateRange.Lookup("$gte").Time().Equal(from))
		assert.True(mt, dateRange.Lookup("$lte").Time().Equal(to))
	})

	mt.Run("get by user without filter", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".exercises", mtest.FirstBatch))
		repo := NewMongoExerciseRepository(mt.DB)

		exercises, err := repo.GetByUserID(context.Background(), primitive.NewObjectID(), repository.ExerciseFilter{})
		require.NoError(mt, err)
		assert.Empty(mt, exercises)

		cmd := mt.GetStartedEvent().Command
		_, err = cmd.LookupErr("limit")
		assert.Error(mt, err)
		_, err = cmd.Lookup("filter").Document().LookupErr("date")
		assert.Error(mt, err)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates both collections' indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		require.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})

	mt.Run("reports failures", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 85, Message: "index options conflict"}))
		assert.Error(mt, EnsureIndexes(context.Background(), mt.DB))
	})
}

func mustElements(t require.TestingT, doc bson.Raw) []bson.RawElement {
	elems, err := doc.Elements()
	require.NoError(t, err)
	return elems
}
