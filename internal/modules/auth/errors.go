package auth

import "hadithapi/internal/pkg/apperror"

var (
	ErrEmailAlreadyExists = apperror.BadRequest("EMAIL_EXISTS", "Email already registered")
	ErrInvalidCredentials = apperror.Unauthorized("INVALID_CREDENTIALS", "Incorrect email or password")
	ErrInactiveUser       = apperror.Forbidden("INACTIVE_USER", "Inactive user")
	ErrUserNotFound       = apperror.NotFound("USER_NOT_FOUND", "User not found")
	ErrNothingToUpdate    = apperror.BadRequest("NOTHING_TO_UPDATE", "No fields to update")
)
