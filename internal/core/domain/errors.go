package domain

import "errors"

var (
	// ErrTokenAlreadyLocked is thrown when trying to lock a record already
	// locked by a different reservation
	ErrTokenAlreadyLocked = errors.New("token record is already locked by another reservation")
	// ErrTokenNotFound ...
	ErrTokenNotFound = errors.New("token record not found")
	// ErrNotaryConflict is thrown when binding a draft to a settlement
	// authority while it already carries a different one
	ErrNotaryConflict = errors.New("draft is already bound to a different settlement authority")
)
