package contract

import (
	"context"
	"errors"

	"github.com/Ines207/ARI/internal/entity"
)

var (
	// ErrNotFound means the username keys no record.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate means an insert hit an existing username.
	ErrDuplicate = errors.New("user already exists")
)

// UserStore is the pluggable keyed document store behind the credential and
// session stores. The current backend is a whole-file JSON document with
// load-modify-save semantics; the interface keeps an embedded key-value
// engine swappable in later without touching the services.
type UserStore interface {
	// FindByUsername returns the stored record, or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Insert writes a new record, or returns ErrDuplicate.
	Insert(ctx context.Context, user *entity.User) error

	// Update runs mutate on the current record and persists the result as one
	// whole-document rewrite. Returns ErrNotFound for unknown users; any error
	// from mutate aborts the write with no partial state.
	Update(ctx context.Context, username string, mutate func(*entity.User) error) error
}
