package chama

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrUnknownMember    = errors.New("member could not be resolved")
	ErrInvalidAmount    = errors.New("amount must be a positive whole number")
	ErrInvalidDuration  = errors.New("loan duration must be at least one month")
	ErrInvalidName      = errors.New("member name is required")
	ErrInvalidSettings  = errors.New("invalid settings")
	ErrLoanClosed       = errors.New("loan is already paid")
	ErrDuplicatePosting = errors.New("posting already recorded")
)
