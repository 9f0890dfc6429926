package product

import "stockstores-be/internal/apperr"

var (
	ErrProductNotFound = apperr.New(apperr.NotFound, "Sorry, that product does not exist.")
	ErrNameRequired    = apperr.New(apperr.Validation, "productName is required")
	ErrStoreRequired   = apperr.New(apperr.Validation, "storeId is required")
	ErrNegativePrice   = apperr.New(apperr.Validation, "productPrice cannot be negative")
	ErrNegativeStock   = apperr.New(apperr.Validation, "stockAmount cannot be negative")
	ErrEmptyUpdate     = apperr.New(apperr.Validation, "nothing to update")
)

func missingProduct(id string) error {
	return apperr.Newf(apperr.NotFound, "Product with ID '%s' not found.", id)
}

func insufficientStock(name string) error {
	return apperr.Newf(apperr.InsufficientStock, "Insufficient stock for product '%s'.", name)
}
