package port

import (
	"errors"
	"fmt"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrSlotNotFound     = errors.New("slot not found")
	ErrCreatorNotFound  = errors.New("creator not found")
)

// ValidationError reports malformed input rejected before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps a failed store call so callers can distinguish
// infrastructure failures from not-found and validation outcomes.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
