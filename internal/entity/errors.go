package entity

import "errors"

var (
	ErrLeadNotFound       = errors.New("lead not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrVersionConflict means the aggregate changed between read and write.
	// The caller should re-read and retry.
	ErrVersionConflict = errors.New("lead was modified by another request")
)
