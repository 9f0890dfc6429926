package address

import "stockstores-be/internal/apperr"

var (
	ErrAddressNotFound = apperr.New(apperr.NotFound, "The shipping address could not be found.")
	ErrMissingFields   = apperr.New(apperr.Validation, "All shipping address fields are required.")
	ErrEmptyUpdate     = apperr.New(apperr.Validation, "no fields to update")
	ErrBlankField      = apperr.New(apperr.Validation, "shipping address fields cannot be blank")
)
