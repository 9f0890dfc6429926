package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "stockstores.reviews"

	mt.Run("Create duplicate", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := repo.Create(context.Background(), &Review{ProductID: "p1", UserID: "u1", Rating: 3})
		assert.ErrorIs(mt, err, ErrDuplicateReview)
	})

	mt.Run("Ratings", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{{Key: "rating", Value: 4}},
				bson.D{{Key: "rating", Value: 2}},
			),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		ratings, err := repo.Ratings(context.Background(), "p1")
		require.NoError(mt, err)
		assert.Equal(mt, []int{4, 2}, ratings)
	})

	mt.Run("FindByProductAndUser none", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		rv, err := repo.FindByProductAndUser(context.Background(), "p1", "u1")
		assert.NoError(mt, err)
		assert.Nil(mt, rv)
	})

	mt.Run("GetByID not found", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrReviewNotFound)
	})

	mt.Run("Update", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "productId", Value: "p1"},
			{Key: "rating", Value: 1},
			{Key: "createdAt", Value: time.Now()},
		}}))

		r := 1
		rv, err := repo.Update(context.Background(), id.Hex(), ReviewUpdate{Rating: &r})
		require.NoError(mt, err)
		assert.Equal(mt, 1, rv.Rating)
		assert.Nil(mt, rv.Comment)
	})

	mt.Run("UpdateUserInfo", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 2},
			bson.E{Key: "nModified", Value: 2},
		))

		name := "Ana"
		n, err := repo.UpdateUserInfo(context.Background(), "u1", UserInfo{UserFirstName: &name})
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), n)
	})
}

func TestUpdateDocument(t *testing.T) {
	now := time.Unix(0, 0)

	unset := updateDocument(ReviewUpdate{UnsetComment: true, Comment: strPtr("ignored")}, now)
	assert.Equal(t, bson.M{"comment": ""}, unset["$unset"])
	assert.NotContains(t, unset["$set"], "comment")

	set := updateDocument(ReviewUpdate{Comment: strPtr("ok")}, now)
	assert.NotContains(t, set, "$unset")
	assert.Equal(t, "ok", set["$set"].(bson.M)["comment"])
}
