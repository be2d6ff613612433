package apperrors

import "errors"

var (
	// common errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("error processing the request")

	// auth-specific errors
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrMissingToken     = errors.New("authorization header is required")
	ErrWrongCredentials = errors.New("wrong email or password")

	// user validation errors
	ErrEmailTaken       = errors.New("email is already taken by another user")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrUsernameRequired = errors.New("username is a required field")
	ErrEmptyPassword    = errors.New("password must not be empty")

	// task validation errors
	ErrTaskTitleRequired   = errors.New("task title is a required field")
	ErrDescriptionRequired = errors.New("task description is a required field")
)
