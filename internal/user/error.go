package user

import "stockstores-be/internal/apperr"

var (
	ErrUserNotFound       = apperr.New(apperr.NotFound, "User could not be found.")
	ErrEmailNotFound      = apperr.New(apperr.NotFound, "No user exists with that email.")
	ErrMissingFields      = apperr.New(apperr.Validation, "Missing required fields")
	ErrEmailExists        = apperr.New(apperr.Conflict, "A user with that email already exists.")
	ErrEmailTaken         = apperr.New(apperr.Conflict, "Another user is already using this email.")
	ErrInvalidCredentials = apperr.New(apperr.Unauthorized, "Invalid email or password")
	ErrWrongPassword      = apperr.New(apperr.Unauthorized, "That is not the correct password for your account.")
	ErrResetExpired       = apperr.New(apperr.Unauthorized, "The reset link expired, please request a new one.")
	ErrPasswordRequired   = apperr.New(apperr.Validation, "password is required")
	ErrMailFailed         = apperr.New(apperr.Upstream, "The reset email could not be sent.")
)
