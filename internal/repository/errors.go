package repository

import "errors"

var (
	// ErrNotFound is returned by lookups that match no row.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken and ErrEmailTaken report which identity field violated
	// the uniqueness constraint on insert or update.
	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")
	// ErrDuplicateLogDate is returned when a user already has a daily log for
	// the requested date.
	ErrDuplicateLogDate = errors.New("daily log already exists for this date")
	// ErrFoodInUse is returned when deleting a catalog food that is still
	// referenced by food entries.
	ErrFoodInUse = errors.New("food is referenced by existing entries")
)
