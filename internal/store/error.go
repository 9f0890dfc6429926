package store

import "stockstores-be/internal/apperr"

var (
	ErrStoreNotFound     = apperr.New(apperr.NotFound, "Sorry, that store does not exist.")
	ErrNoSellerStores    = apperr.New(apperr.NotFound, "No stores were found for this seller.")
	ErrSellerRequired    = apperr.New(apperr.Validation, "sellerId is required")
	ErrNameRequired      = apperr.New(apperr.Validation, "storeName is required")
	ErrEmptyUpdate       = apperr.New(apperr.Validation, "nothing to update")
	ErrNothingToSync     = apperr.New(apperr.Validation, "no seller fields to update")
	ErrSlugAlreadyExists = apperr.New(apperr.Conflict, "store slug already exists")
)
