package order

import "stockstores-be/internal/apperr"

var (
	ErrOrderNotFound  = apperr.New(apperr.NotFound, "Sorry, that order does not exist.")
	ErrStoreNotFound  = apperr.New(apperr.NotFound, "Sorry, that store does not exist.")
	ErrUserRequired   = apperr.New(apperr.Validation, "userId is required")
	ErrStoreRequired  = apperr.New(apperr.Validation, "storeId is required")
	ErrItemsRequired  = apperr.New(apperr.Validation, "an order needs at least one item")
	ErrInvalidStatus  = apperr.New(apperr.Validation, "unknown order status")
	ErrEmptyUpdate    = apperr.New(apperr.Validation, "nothing to update")
	ErrNothingToSync  = apperr.New(apperr.Validation, "no store fields to update")
	ErrNegativePrice  = apperr.New(apperr.Validation, "prices cannot be negative")
	ErrTotalsMismatch = apperr.New(apperr.Validation, "order totals do not add up")
)

func invalidItem(i int, reason string) error {
	return apperr.Newf(apperr.Validation, "orderItems[%d]: %s", i, reason)
}
