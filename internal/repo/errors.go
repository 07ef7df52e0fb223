package repo

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors shared by all repositories. Handlers map these to HTTP
// statuses with errors.Is; nothing else that leaves this package carries
// meaning beyond "internal".
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("duplicate")
	ErrNoFields     = errors.New("no fields to update")
	ErrBadReference = errors.New("referenced row does not exist")
	ErrUnauthorized = errors.New("invalid username/password")
)

// Postgres error codes for constraint violations.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a Postgres unique_violation.
// The constraint is the authoritative duplicate signal; repositories never
// pre-check for an existing row before inserting.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// IsForeignKeyViolation reports whether err is a Postgres foreign_key_violation,
// e.g. a booking naming a renter or listing that does not exist.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
