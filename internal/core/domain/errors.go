package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Master-data errors. Specific sentinels wrap the common ones so handlers
// can map them to HTTP statuses with a single errors.Is walk.
var (
	ErrMasterNotFound     = fmt.Errorf("master record: %w", ErrNotFound)
	ErrMasterNameTaken    = fmt.Errorf("%w: an active record with this name already exists", ErrDuplicateEntry)
	ErrMasterInactiveDupe = fmt.Errorf("%w: an inactive record with this name exists", ErrDuplicateEntry)
)

// Deputation errors
var (
	ErrDeputationNotFound = fmt.Errorf("central deputation record: %w", ErrNotFound)
	ErrOfficerNotFound    = fmt.Errorf("officer: %w", ErrNotFound)
)
