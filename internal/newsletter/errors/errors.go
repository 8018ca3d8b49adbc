package errors

import "errors"

var (
	ErrNotFound = errors.New("newsletter subscription not found")

	ErrAlreadySubscribed = errors.New("email is already subscribed")

	ErrInvalidID = errors.New("invalid subscription ID format")
)
