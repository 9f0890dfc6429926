package review

import (
	"context"
	"errors"
	"time"

	"stockstores-be/internal/db"
	"stockstores-be/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) Repository {
	return &mongoRepository{coll: database.Collection(db.ReviewsCollection)}
}

func (r *mongoRepository) Create(ctx context.Context, rv *Review) error {
	now := time.Now().UTC()
	rv.CreatedAt, rv.UpdatedAt = now, now

	res, err := r.coll.InsertOne(ctx, toDocument(rv))
	if db.IsDuplicateKey(err) {
		return ErrDuplicateReview
	}
	if err != nil {
		logger.FromCtx(ctx).Error("insert review failed", zap.Error(err))
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rv.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrReviewNotFound
	}

	rv, err := r.findOne(ctx, bson.M{"_id": oid})
	if err == nil && rv == nil {
		return nil, ErrReviewNotFound
	}
	return rv, err
}

func (r *mongoRepository) FindByProductAndUser(ctx context.Context, productID, userID string) (*Review, error) {
	return r.findOne(ctx, bson.M{"productId": productID, "userId": userID})
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*Review, error) {
	var doc reviewDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toReview(), nil
}

func (r *mongoRepository) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	cur, err := r.coll.Find(ctx, bson.M{"productId": productID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		logger.FromCtx(ctx).Error("list reviews failed", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}
	defer cur.Close(ctx)

	reviews := []Review{}
	for cur.Next(ctx) {
		var doc reviewDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, *doc.toReview())
	}
	return reviews, cur.Err()
}

func (r *mongoRepository) Ratings(ctx context.Context, productID string) ([]int, error) {
	cur, err := r.coll.Find(ctx, bson.M{"productId": productID},
		options.Find().SetProjection(bson.M{"rating": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ratings []int
	for cur.Next(ctx) {
		var doc struct {
			Rating int `bson:"rating"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ratings = append(ratings, doc.Rating)
	}
	return ratings, cur.Err()
}

func (r *mongoRepository) Update(ctx context.Context, id string, u ReviewUpdate) (*Review, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrReviewNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc reviewDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, updateDocument(u, time.Now().UTC()), opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("update review failed", zap.String("review_id", id), zap.Error(err))
		return nil, err
	}
	return doc.toReview(), nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	oid, ok := db.ObjectID(id)
	if !ok {
		return ErrReviewNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *mongoRepository) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"productId": productID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoRepository) UpdateUserInfo(ctx context.Context, userID string, info UserInfo) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, bson.M{"userId": userID}, bson.M{"$set": userInfoSet(info, time.Now().UTC())})
	if err != nil {
		logger.FromCtx(ctx).Error("sync review user info failed", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}
	return res.ModifiedCount, nil
}
