package main

import (
	"context"
	"fmt"

	"stockstores-be/internal/address"
	"stockstores-be/internal/config"
	"stockstores-be/internal/db"
	"stockstores-be/internal/logger"
	"stockstores-be/internal/order"
	"stockstores-be/internal/product"
	"stockstores-be/internal/review"
	"stockstores-be/internal/store"
	"stockstores-be/internal/user"

	"go.uber.org/zap"
)

type repositories struct {
	users     user.Repository
	stores    store.Repository
	products  product.Repository
	reviews   review.Repository
	orders    order.Repository
	addresses address.Repository
}

// openRepositories connects to the configured entity store. The returned
// func releases the connection.
func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, database, err := db.ConnectMongo(ctx, cfg.MongoURL, cfg.MongoDatabase, cfg.DBTimeout)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureIndexes(ctx, database); err != nil {
			logger.L().Warn("could not ensure indexes", zap.Error(err))
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.L().Error("mongo disconnect failed", zap.Error(err))
			}
		}
		return &repositories{
			users:     user.NewMongoRepository(database),
			stores:    store.NewMongoRepository(database),
			products:  product.NewMongoRepository(database),
			reviews:   review.NewMongoRepository(database),
			orders:    order.NewMongoRepository(database),
			addresses: address.NewMongoRepository(database),
		}, closeFn, nil

	case config.DriverPostgres:
		conn, err := db.OpenPostgres(ctx, cfg.DBURL, cfg.DBTimeout)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := conn.Close(); err != nil {
				logger.L().Error("postgres close failed", zap.Error(err))
			}
		}
		return &repositories{
			users:     user.NewRepository(conn),
			stores:    store.NewRepository(conn),
			products:  product.NewRepository(conn),
			reviews:   review.NewRepository(conn),
			orders:    order.NewRepository(conn),
			addresses: address.NewRepository(conn),
		}, closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
