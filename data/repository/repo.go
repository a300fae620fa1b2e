package repository

import (
	"context"
	"errors"
	"time"

	"event-signup/data/models"
)

// ErrNotFound is returned by Delete when the keyed record does not exist.
// Lookups signal absence with a nil record instead, since a missing record
// is an ordinary outcome rather than a fault.
var ErrNotFound = errors.New("record not found")

// Repo is the durable mapping from entity key to entity record, backed by
// either JSON collection files or Postgres. Every successful mutation is
// fully persisted before the call returns. Lookups return (nil, nil) when
// the key is absent.
type Repo interface {
	GetAccount(ctx context.Context, username string) (*models.Account, error)
	PutAccount(ctx context.Context, a *models.Account) error

	// PutEvent upserts; when the event has no ID yet, the backend assigns
	// the next value of a monotonic counter and sets it on the record.
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	PutEvent(ctx context.Context, e *models.Event) error
	DeleteEvent(ctx context.Context, id string) error

	ListEvents(ctx context.Context) ([]models.Event, error)
	// SearchEvents matches a case-insensitive substring of the event name.
	SearchEvents(ctx context.Context, query string) ([]models.Event, error)
	EventsByOrganizer(ctx context.Context, username string) ([]models.Event, error)
	// UpcomingEvents returns events dated on or after the given day.
	UpcomingEvents(ctx context.Context, from time.Time) ([]models.Event, error)
}
