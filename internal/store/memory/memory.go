// Package memory implements the store adapter in process memory. It
// backs the connector's tests and offline use; semantics mirror the
// HTTP adapter, including modification-time tracking for filtered
// fetches.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/roster/internal/store"
	"github.com/agentstation/roster/pkg/directory"
	"github.com/agentstation/roster/pkg/errors"
)

type row struct {
	id       string
	fields   map[string]any
	modified time.Time
}

// Store is an in-memory tabular record store. It is safe for
// concurrent use.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]*row
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{tables: make(map[string][]*row)}
}

// Seed inserts a record with a fresh store identifier and returns it.
// Unlike Create it is not part of the store.Store contract; tests use it
// to arrange fixtures.
func (s *Store) Seed(table string, fields map[string]any) directory.Record {
	rec, _ := s.Create(context.Background(), table, fields)
	return rec
}

// FetchAll implements store.Store.
func (s *Store) FetchAll(_ context.Context, table string) ([]directory.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.tables[table]
	records := make([]directory.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records, nil
}

// FetchFiltered implements store.Store.
func (s *Store) FetchFiltered(_ context.Context, table string, p store.Predicate) ([]directory.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []directory.Record
	for _, r := range s.tables[table] {
		if matches(r, p) {
			records = append(records, r.record())
		}
	}
	return records, nil
}

// Create implements store.Store.
func (s *Store) Create(_ context.Context, table string, fields map[string]any) (directory.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &row{
		id:       "rec" + uuid.NewString(),
		fields:   maps.Clone(fields),
		modified: time.Now(),
	}
	if r.fields == nil {
		r.fields = make(map[string]any)
	}
	s.tables[table] = append(s.tables[table], r)
	return r.record(), nil
}

// Update implements store.Store.
func (s *Store) Update(_ context.Context, table, id string, fields map[string]any) (directory.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.tables[table] {
		if r.id == id {
			maps.Copy(r.fields, fields)
			r.modified = time.Now()
			return r.record(), nil
		}
	}
	return directory.Record{}, errors.NewNotFoundError("record", id)
}

// Delete implements store.Store.
func (s *Store) Delete(_ context.Context, table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[table]
	for i, r := range rows {
		if r.id == id {
			s.tables[table] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("record", id)
}

func (r *row) record() directory.Record {
	return directory.Record{ID: r.id, Fields: maps.Clone(r.fields)}
}

func matches(r *row, p store.Predicate) bool {
	switch pred := p.(type) {
	case store.FieldEquals:
		return directory.EnsureString(r.fields[pred.Field]) == pred.Value
	case store.ModifiedSince:
		return r.modified.After(pred.After)
	default:
		return false
	}
}
