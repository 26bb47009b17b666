package roster

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/roster/pkg/logging"
)

// Option is a function that configures a Connector instance
type Option func(*Connector)

// WithTables overrides the backing table names for accounts and
// entitlements.
func WithTables(accounts, entitlements string) Option {
	return func(c *Connector) {
		if accounts != "" {
			c.accountsTable = accounts
		}
		if entitlements != "" {
			c.entitlementsTable = entitlements
		}
	}
}

// WithStateful declares whether the source supports incremental
// listing. A non-stateful source ignores any supplied cursor and always
// performs a full listing.
func WithStateful(enabled bool) Option {
	return func(c *Connector) {
		c.stateful = enabled
	}
}

// WithBaseID records the base identifier for source-data reads.
func WithBaseID(baseID string) Option {
	return func(c *Connector) {
		c.baseID = baseID
	}
}

// WithLogger configures the structured logger used by operations.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Connector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRedactor configures the log redaction boundary. The redactor is
// passed in explicitly; the connector never mutates shared redaction
// state.
func WithRedactor(r *logging.Redactor) Option {
	return func(c *Connector) {
		if r != nil {
			c.redactor = r
		}
	}
}
