package address

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
	return &mongoRepository{coll: database.Collection(db.ShippingAddressesCollection)}
}

func (r *mongoRepository) ListByUser(ctx context.Context, userID string) ([]Address, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		logger.FromCtx(ctx).Error("list addresses failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer cur.Close(ctx)

	list := []Address{}
	for cur.Next(ctx) {
		var doc addressDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		list = append(list, *doc.toAddress())
	}
	return list, cur.Err()
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*Address, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrAddressNotFound
	}

	var doc addressDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("get address failed", zap.String("address_id", id), zap.Error(err))
		return nil, err
	}
	return doc.toAddress(), nil
}

func (r *mongoRepository) Create(ctx context.Context, a *Address) error {
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now

	res, err := r.coll.InsertOne(ctx, toDocument(a))
	if err != nil {
		logger.FromCtx(ctx).Error("insert address failed", zap.String("user_id", a.UserID), zap.Error(err))
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, u AddressUpdate) (*Address, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrAddressNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc addressDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": updateSet(u, time.Now().UTC())}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("update address failed", zap.String("address_id", id), zap.Error(err))
		return nil, err
	}
	return doc.toAddress(), nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	oid, ok := db.ObjectID(id)
	if !ok {
		return ErrAddressNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		logger.FromCtx(ctx).Error("delete address failed", zap.String("address_id", id), zap.Error(err))
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAddressNotFound
	}
	return nil
}
