package domain

import "errors"

var (
	// ErrInvalidNotification is returned when a push payload cannot be decoded
	ErrInvalidNotification = errors.New("invalid change notification")

	// ErrAccountNotFound is returned when a subscription account does not exist
	ErrAccountNotFound = errors.New("subscription account not found")

	// ErrCredentialRevoked is returned when the refresh token is no longer valid.
	// This is a permanent error and must not be retried.
	ErrCredentialRevoked = errors.New("credential revoked")

	// ErrWatchNotRegistered is returned when an operation requires an active watch
	ErrWatchNotRegistered = errors.New("watch not registered")

	// ErrRuleNotFound is returned when a match rule does not exist
	ErrRuleNotFound = errors.New("match rule not found")
)
