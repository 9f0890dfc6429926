// Package stock turns order line items into product stock movements.
//
// Every movement is a single conditional store operation: a product's stock
// only changes when the result stays non-negative, so concurrent orders for
// the same product cannot oversell it.
package stock

import (
	"context"
	"errors"
	"sort"

	"stockstores-be/internal/logger"

	"go.uber.org/zap"
)

// Line is the part of an order line item the ledger cares about.
type Line struct {
	ProductID string
	Quantity  int
}

// Adjuster applies delta to a product's stockAmount if the result is >= 0.
// It must return an error matching apperr.NotFound when the product does not
// exist and apperr.InsufficientStock when the guard rejects the change.
type Adjuster interface {
	AdjustStock(ctx context.Context, productID string, delta int) error
}

// NetQuantities sums quantities per product id.
func NetQuantities(items []Line) map[string]int {
	net := make(map[string]int, len(items))
	for _, it := range items {
		net[it.ProductID] += it.Quantity
	}
	return net
}

// ProductIDs returns the keys of net in a stable order.
func ProductIDs(net map[string]int) []string {
	ids := make([]string, 0, len(net))
	for id := range net {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ApplyDelta changes the stock of one product by delta in a single
// conditional write. A zero delta is a no-op.
func ApplyDelta(ctx context.Context, s Adjuster, productID string, delta int) error {
	if delta == 0 {
		return nil
	}
	return s.AdjustStock(ctx, productID, delta)
}

// Reserve deducts the net quantity of every product in items. Products are
// processed one at a time; every failing product contributes its own error.
// When anything fails, reservations already made by this call are given back
// so a failed reservation leaves stock as it was.
func Reserve(ctx context.Context, s Adjuster, items []Line) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "stock"),
		zap.String("method", "Reserve"),
	)

	net := NetQuantities(items)

	var (
		reserved []string
		errs     []error
	)
	for _, id := range ProductIDs(net) {
		if err := ApplyDelta(ctx, s, id, -net[id]); err != nil {
			log.Warn("reservation rejected",
				zap.String("product_id", id),
				zap.Int("quantity", net[id]),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		reserved = append(reserved, id)
	}

	if len(errs) == 0 {
		return nil
	}

	for _, id := range reserved {
		if err := ApplyDelta(ctx, s, id, net[id]); err != nil {
			// Compensation is best effort; the stock stays short by net[id].
			log.Error("failed to give back reservation",
				zap.String("product_id", id),
				zap.Int("quantity", net[id]),
				zap.Error(err),
			)
		}
	}

	return errors.Join(errs...)
}

// Release adds the net quantity of every product in items back to stock.
// Failures are collected and returned, they never stop the walk.
func Release(ctx context.Context, s Adjuster, items []Line) []error {
	net := NetQuantities(items)

	var errs []error
	for _, id := range ProductIDs(net) {
		if err := ApplyDelta(ctx, s, id, net[id]); err != nil {
			logger.FromCtx(ctx).Warn("stock release skipped",
				zap.String("product_id", id),
				zap.Int("quantity", net[id]),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errs
}
