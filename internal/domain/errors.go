package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrInvalidUsername   = errors.New("invalid username")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrCycleDetected     = errors.New("referral cycle detected")
	ErrTraversalLimit    = errors.New("referral traversal limit exceeded")
)
