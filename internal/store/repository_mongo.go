package store

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
	return &mongoRepository{coll: database.Collection(db.StoresCollection)}
}

func (r *mongoRepository) Create(ctx context.Context, s *Store) error {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now

	res, err := r.coll.InsertOne(ctx, toDocument(s))
	if err != nil {
		if db.IsDuplicateKey(err) {
			return ErrSlugAlreadyExists
		}
		logger.FromCtx(ctx).Error("insert store failed", zap.Error(err))
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRepository) List(ctx context.Context) ([]Store, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoRepository) ListBySeller(ctx context.Context, sellerID string) ([]Store, error) {
	return r.list(ctx, bson.M{"sellerId": sellerID})
}

func (r *mongoRepository) list(ctx context.Context, filter bson.M) ([]Store, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		logger.FromCtx(ctx).Error("list stores failed", zap.Error(err))
		return nil, err
	}
	defer cur.Close(ctx)

	stores := []Store{}
	for cur.Next(ctx) {
		var doc storeDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		stores = append(stores, *doc.toStore())
	}
	return stores, cur.Err()
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*Store, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrStoreNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoRepository) GetBySlug(ctx context.Context, slug string) (*Store, error) {
	return r.findOne(ctx, bson.M{"storeSlug": slug})
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*Store, error) {
	var doc storeDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("find store failed", zap.Error(err))
		return nil, err
	}
	return doc.toStore(), nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, u StoreUpdate) (*Store, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrStoreNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc storeDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": updateSet(u, time.Now().UTC())}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("update store failed", zap.String("store_id", id), zap.Error(err))
		return nil, err
	}
	return doc.toStore(), nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	oid, ok := db.ObjectID(id)
	if !ok {
		return ErrStoreNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		logger.FromCtx(ctx).Error("delete store failed", zap.String("store_id", id), zap.Error(err))
		return err
	}
	if res.DeletedCount == 0 {
		return ErrStoreNotFound
	}
	return nil
}

func (r *mongoRepository) UpdateSellerInfo(ctx context.Context, sellerID string, info SellerInfo) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"sellerId": sellerID},
		bson.M{"$set": sellerInfoSet(info, time.Now().UTC())},
	)
	if err != nil {
		logger.FromCtx(ctx).Error("seller snapshot update failed", zap.String("seller_id", sellerID), zap.Error(err))
		return 0, err
	}
	return res.ModifiedCount, nil
}
