package db

import (
	"context"
	"fmt"
	"time"

	"stockstores-be/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names.
const (
	UsersCollection             = "users"
	StoresCollection            = "stores"
	ProductsCollection          = "products"
	ReviewsCollection           = "reviews"
	OrdersCollection            = "orders"
	ShippingAddressesCollection = "shippingaddresses"
)

// ConnectMongo dials uri and pings the primary within timeout.
func ConnectMongo(ctx context.Context, uri, database string, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.L().Info("mongo connection established", zap.String("database", database))
	return client, client.Database(database), nil
}

// ObjectID parses hex. ok is false for strings that cannot be a document id.
func ObjectID(hex string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(hex)
	return oid, err == nil
}

// ObjectIDs parses every id, dropping the ones that are not valid hex.
func ObjectIDs(hexes []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if oid, ok := ObjectID(h); ok {
			out = append(out, oid)
		}
	}
	return out
}

func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
