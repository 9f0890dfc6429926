package db

import (
	"context"
	"fmt"

	"stockstores-be/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

func indexPlan() []collectionIndexes {
	return []collectionIndexes{
		{UsersCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{StoresCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "storeSlug", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "sellerId", Value: 1}}},
		}},
		{ProductsCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "productSlug", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "storeId", Value: 1}, {Key: "isFeatured", Value: 1}}},
		}},
		// One review per user and product.
		{ReviewsCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		}},
		{OrdersCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "storeId", Value: 1}}},
		}},
		{ShippingAddressesCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		}},
	}
}

// EnsureIndexes creates the indexes every repository relies on. Creating an
// index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for _, ci := range indexPlan() {
		names, err := database.Collection(ci.collection).Indexes().CreateMany(ctx, ci.models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", ci.collection, err)
		}
		logger.FromCtx(ctx).Info("indexes ensured",
			zap.String("collection", ci.collection),
			zap.Strings("indexes", names),
		)
	}
	return nil
}
