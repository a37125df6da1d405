// Package memory provides an in-process CV store for local development and
// tests. It mirrors the DynamoDB store's observable behaviour.
package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"cv-backend/internal/domain"
	appErrors "cv-backend/internal/errors"
	"cv-backend/internal/repository"

	"gopkg.in/yaml.v3"
)

// Store keeps CV records in a map keyed by id.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.CV
}

// NewStore returns a store holding the given records.
func NewStore(records ...domain.CV) *Store {
	s := &Store{records: make(map[string]domain.CV, len(records))}
	for _, r := range records {
		s.records[r.ID()] = copyCV(r)
	}
	return s
}

// LoadFile reads a YAML (or JSON) list of records.
func LoadFile(path string) ([]domain.CV, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	records := make([]domain.CV, 0, len(raw))
	for i, r := range raw {
		cv := domain.CV(r)
		if cv.ID() == "" {
			return nil, fmt.Errorf("seed record %d in %s has no string id", i, path)
		}
		records = append(records, cv)
	}
	return records, nil
}

// Replace swaps the whole content of the store.
func (s *Store) Replace(records []domain.CV) {
	next := make(map[string]domain.CV, len(records))
	for _, r := range records {
		next[r.ID()] = copyCV(r)
	}

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
}

// Len returns the number of records held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) GetCV(ctx context.Context, id string) (domain.CV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cv, ok := s.records[id]
	if !ok {
		return nil, repository.ErrCVNotFound
	}
	return copyCV(cv), nil
}

// SetViews behaves like an unconditional DynamoDB SET and creates the
// record when it does not exist.
func (s *Store) SetViews(ctx context.Context, id string, views int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cv, ok := s.records[id]
	if !ok {
		cv = domain.CV{domain.AttrID: id}
	}
	s.records[id] = cv.WithViews(views)
	return nil
}

func (s *Store) IncrementViews(ctx context.Context, id string) (domain.CV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cv, ok := s.records[id]
	if !ok {
		return nil, repository.ErrCVNotFound
	}
	views, err := cv.Views()
	if err != nil {
		return nil, &appErrors.ServiceError{
			Operation: "UpdateItem",
			Code:      "ValidationException",
			Message:   "An operand in the update expression has an incorrect data type",
			Cause:     err,
		}
	}
	updated := cv.WithViews(views + 1)
	s.records[id] = updated
	return copyCV(updated), nil
}

func copyCV(cv domain.CV) domain.CV {
	out := make(domain.CV, len(cv))
	for k, v := range cv {
		out[k] = v
	}
	return out
}
