// Package roster adapts the fixed identity-governance lifecycle
// operations onto a tabular backing record store. The connector composes
// a directory adapter (the store), the record mapping and attribute-delta
// resolution in pkg/directory, and a structured-log boundary with
// explicit field redaction.
//
// Every operation is a stateless request/response unit: no resources
// outlive a call, no locks are held across calls, and no retries are
// performed. A failed store call surfaces immediately as a StoreError.
package roster

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/roster/internal/store"
	"github.com/agentstation/roster/pkg/logging"
)

// Connector implements the lifecycle operation set over a backing
// directory. It is safe for concurrent use: all state is configuration.
type Connector struct {
	store             store.Store
	accountsTable     string
	entitlementsTable string
	baseID            string
	stateful          bool
	logger            *zerolog.Logger
	redactor          *logging.Redactor
}

// New creates a Connector over the given store with the supplied
// options applied.
func New(s store.Store, opts ...Option) *Connector {
	c := &Connector{
		store:             s,
		accountsTable:     store.AccountsTable,
		entitlementsTable: store.EntitlementsTable,
		logger:            logging.Default(),
		redactor:          logging.NewRedactor(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stateful reports whether the source is declared stateful.
func (c *Connector) Stateful() bool {
	return c.stateful
}
