package store

import (
	"context"
	"errors"

	"github.com/artem20051205/bady/internal/domain"
)

// ErrNotFound is returned by Get when no record exists for the chat id.
var ErrNotFound = errors.New("user record not found")

// Repo defines storage operations for user records. Both the survey engine
// and the tracking scheduler receive it by injection; there are no global
// user maps anywhere in the process.
type Repo interface {
	Get(ctx context.Context, chatID int64) (*domain.UserRecord, error)
	Put(ctx context.Context, rec *domain.UserRecord) error
	ListIDs(ctx context.Context) ([]int64, error)
	Delete(ctx context.Context, chatID int64) error
	Close() error
}
