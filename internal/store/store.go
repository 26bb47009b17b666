// Package store defines the directory-adapter boundary: the minimal
// fetch/filter/create/update/delete surface the connector needs from a
// tabular backing store, expressed over raw records.
package store

import (
	"context"
	"time"

	"github.com/agentstation/roster/pkg/directory"
)

// Default table names in the backing base.
const (
	AccountsTable     = "Users"
	EntitlementsTable = "Entitlements"
)

// Predicate selects records in a filtered fetch. The engine only ever
// needs two shapes; how a store evaluates them (formula, query, scan) is
// store-defined.
type Predicate interface {
	predicate()
}

// FieldEquals matches records whose named field equals the value.
type FieldEquals struct {
	Field string
	Value string
}

func (FieldEquals) predicate() {}

// ModifiedSince matches records modified after the given time. Stores
// that do not track modification time match nothing.
type ModifiedSince struct {
	After time.Time
}

func (ModifiedSince) predicate() {}

// Store is the directory adapter consumed by the connector. All methods
// are fallible and blocking; the connector wraps their failures into its
// error taxonomy at the operation boundary.
type Store interface {
	// FetchAll returns every record in the table, in store order.
	FetchAll(ctx context.Context, table string) ([]directory.Record, error)

	// FetchFiltered returns the records matching the predicate.
	FetchFiltered(ctx context.Context, table string, p Predicate) ([]directory.Record, error)

	// Create inserts a record with the given fields and returns the
	// stored record, including its store-assigned identifier.
	Create(ctx context.Context, table string, fields map[string]any) (directory.Record, error)

	// Update replaces fields of the record addressed by its internal
	// identifier and returns the stored record.
	Update(ctx context.Context, table, id string, fields map[string]any) (directory.Record, error)

	// Delete removes the record addressed by its internal identifier.
	Delete(ctx context.Context, table, id string) error
}
