package product

import (
	"context"
	"errors"
	"time"

	"stockstores-be/internal/db"
	"stockstores-be/internal/logger"
	"stockstores-be/internal/rating"

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
	return &mongoRepository{coll: database.Collection(db.ProductsCollection)}
}

func (r *mongoRepository) Create(ctx context.Context, p *Product) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	res, err := r.coll.InsertOne(ctx, toDocument(p))
	if err != nil {
		logger.FromCtx(ctx).Error("insert product failed", zap.Error(err))
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoRepository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return r.findOne(ctx, bson.M{"productSlug": slug})
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*Product, error) {
	var doc productDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("find product failed", zap.Error(err))
		return nil, err
	}
	return doc.toProduct(), nil
}

func (r *mongoRepository) ListByStore(ctx context.Context, storeID string, featuredOnly bool) ([]Product, error) {
	filter := bson.M{"storeId": storeID}
	if featuredOnly {
		filter["isFeatured"] = true
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		logger.FromCtx(ctx).Error("list products failed", zap.String("store_id", storeID), zap.Error(err))
		return nil, err
	}
	defer cur.Close(ctx)

	products := []Product{}
	for cur.Next(ctx) {
		var doc productDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		products = append(products, *doc.toProduct())
	}
	return products, cur.Err()
}

func (r *mongoRepository) Update(ctx context.Context, id string, u ProductUpdate) (*Product, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return r.findOneAndSet(ctx, bson.M{"_id": oid}, updateSet(u, time.Now().UTC()))
}

func (r *mongoRepository) findOneAndSet(ctx context.Context, filter, set bson.M) (*Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("update product failed", zap.Error(err))
		return nil, err
	}
	return doc.toProduct(), nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	oid, ok := db.ObjectID(id)
	if !ok {
		return ErrProductNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		logger.FromCtx(ctx).Error("delete product failed", zap.String("product_id", id), zap.Error(err))
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *mongoRepository) DeleteByStore(ctx context.Context, storeID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"storeId": storeID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "AdjustStock"),
		zap.String("product_id", id),
		zap.Int("delta", delta),
	)

	oid, ok := db.ObjectID(id)
	if !ok {
		return missingProduct(id)
	}

	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["stockAmount"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"stockAmount": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		log.Error("stock update failed", zap.Error(err))
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	var doc productDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return missingProduct(id)
	}
	if err != nil {
		log.Error("stock lookup failed", zap.Error(err))
		return err
	}
	return insufficientStock(doc.ProductName)
}

func (r *mongoRepository) SetRatingSummary(ctx context.Context, id string, s rating.Summary) (*Product, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return r.findOneAndSet(ctx, bson.M{"_id": oid}, bson.M{
		"reviewsAmount": s.ReviewsAmount,
		"averageRating": s.AverageRating,
		"updatedAt":     time.Now().UTC(),
	})
}
