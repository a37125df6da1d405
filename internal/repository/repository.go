// Package repository defines the record store the CV service reads from and
// counts views in. Concrete stores live in the ddb and memory subpackages.
package repository

import (
	"context"
	"errors"

	"cv-backend/internal/domain"
)

// ErrCVNotFound is returned when no record exists for the requested id.
var ErrCVNotFound = errors.New("cv not found")

// CVStore is a key-value store of CV records keyed by id.
//
// Failures reported by the backing service are returned as
// *errors.ServiceError so callers can tell them apart from local failures.
type CVStore interface {
	// GetCV returns the record stored under id, or ErrCVNotFound.
	GetCV(ctx context.Context, id string) (domain.CV, error)

	// SetViews overwrites the view counter of the record stored under id.
	SetViews(ctx context.Context, id string, views int) error

	// IncrementViews adds one to the counter of an existing record in a
	// single atomic operation and returns the updated record, or
	// ErrCVNotFound when there is no such record.
	IncrementViews(ctx context.Context, id string) (domain.CV, error)
}
