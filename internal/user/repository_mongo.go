package user

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
	return &mongoRepository{coll: database.Collection(db.UsersCollection)}
}

func (r *mongoRepository) Create(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	res, err := r.coll.InsertOne(ctx, toDocument(u))
	if err != nil {
		if db.IsDuplicateKey(err) {
			return ErrEmailExists
		}
		logger.FromCtx(ctx).Error("insert user failed", zap.Error(err))
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*User, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoRepository) GetByResetToken(ctx context.Context, token string) (*User, error) {
	return r.findOne(ctx, bson.M{"resetToken": token})
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("find user failed", zap.Error(err))
		return nil, err
	}
	return doc.toUser(), nil
}

func (r *mongoRepository) Save(ctx context.Context, u *User) error {
	oid, ok := db.ObjectID(u.ID)
	if !ok {
		return ErrUserNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"firstName":  u.FirstName,
			"lastName":   u.LastName,
			"email":      u.Email,
			"password":   u.Password,
			"pictureURL": u.PictureURL,
			"updatedAt":  time.Now().UTC(),
		},
	}
	if u.ResetToken != nil {
		update["$set"].(bson.M)["resetToken"] = *u.ResetToken
	} else {
		update["$unset"] = bson.M{"resetToken": ""}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return ErrEmailTaken
		}
		logger.FromCtx(ctx).Error("save user failed", zap.String("user_id", u.ID), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *mongoRepository) SetPicture(ctx context.Context, id, url string) (*User, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrUserNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"pictureURL": url, "updatedAt": time.Now().UTC()}}

	var doc userDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("set picture failed", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return doc.toUser(), nil
}

func (r *mongoRepository) ReplaceAll(ctx context.Context, users []User) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		logger.FromCtx(ctx).Error("clear users failed", zap.Error(err))
		return err
	}
	if len(users) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]any, 0, len(users))
	for i := range users {
		users[i].CreatedAt, users[i].UpdatedAt = now, now
		docs = append(docs, toDocument(&users[i]))
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		logger.FromCtx(ctx).Error("insert users failed", zap.Error(err))
		return err
	}
	for i, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(users) {
			users[i].ID = oid.Hex()
		}
	}
	return nil
}
