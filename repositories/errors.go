package repositories

import "errors"

var (
	// ErrNotFound: the target id or date has no matching row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate: a unique key (employee+date, holiday date) already exists.
	ErrDuplicate = errors.New("duplicate key")
)
