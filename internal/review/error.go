package review

import "stockstores-be/internal/apperr"

var (
	ErrReviewNotFound  = apperr.New(apperr.NotFound, "The review could not be found.")
	ErrProductNotFound = apperr.New(apperr.NotFound, "The product for that review could not be found.")
	ErrDuplicateReview = apperr.New(apperr.DuplicateReview, "You already submitted a review.")
	ErrInvalidRating   = apperr.Newf(apperr.Validation, "rating must be between %d and %d", MinRating, MaxRating)
	ErrProductRequired = apperr.New(apperr.Validation, "productId is required")
	ErrUserRequired    = apperr.New(apperr.Validation, "userId is required")
	ErrNothingToSync   = apperr.New(apperr.Validation, "no user fields to update")
)
