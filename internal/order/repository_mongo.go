package order

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
	return &mongoRepository{coll: database.Collection(db.OrdersCollection)}
}

func (r *mongoRepository) Create(ctx context.Context, o *Order) error {
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now

	res, err := r.coll.InsertOne(ctx, toDocument(o))
	if err != nil {
		logger.FromCtx(ctx).Error("insert order failed", zap.Error(err))
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrOrderNotFound
	}

	var doc orderDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("find order failed", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return doc.toOrder(), nil
}

func (r *mongoRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *mongoRepository) ListByStore(ctx context.Context, storeID string) ([]Order, error) {
	return r.list(ctx, bson.M{"storeId": storeID})
}

func (r *mongoRepository) list(ctx context.Context, filter bson.M) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		logger.FromCtx(ctx).Error("list orders failed", zap.Error(err))
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []Order{}
	for cur.Next(ctx) {
		var doc orderDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		orders = append(orders, *doc.toOrder())
	}
	return orders, cur.Err()
}

func (r *mongoRepository) Update(ctx context.Context, id string, u OrderUpdate) (*Order, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrOrderNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": updateSet(u, time.Now().UTC())}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("update order failed", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return doc.toOrder(), nil
}

func (r *mongoRepository) UpdateStoreInfo(ctx context.Context, storeID string, info StoreInfo) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"storeId": storeID},
		bson.M{"$set": storeInfoSet(info, time.Now().UTC())},
	)
	if err != nil {
		logger.FromCtx(ctx).Error("store snapshot update failed", zap.String("store_id", storeID), zap.Error(err))
		return 0, err
	}
	return res.ModifiedCount, nil
}
