package roster

import (
	"context"

	"github.com/agentstation/roster/internal/store"
	"github.com/agentstation/roster/pkg/directory"
	"github.com/agentstation/roster/pkg/errors"
)

// ListEntitlements fetches every entitlement record and maps it to its
// host-facing shape, in store order. Entitlements are read-only.
func (c *Connector) ListEntitlements(ctx context.Context) ([]directory.EntitlementOutput, error) {
	records, err := c.store.FetchAll(ctx, c.entitlementsTable)
	if err != nil {
		return nil, errors.WrapStore("fetch", c.entitlementsTable, err)
	}

	outputs := make([]directory.EntitlementOutput, 0, len(records))
	for _, rec := range records {
		outputs = append(outputs, directory.EntitlementFromRecord(rec).Output())
	}

	c.logger.Info().Int("count", len(outputs)).Str("table", c.entitlementsTable).Msg("fetched entitlements")
	return outputs, nil
}

// ReadEntitlement resolves an entitlement key to exactly one record.
// NotFound semantics mirror account reads: an empty filtered fetch is
// NotFound even when the transport succeeded.
func (c *Connector) ReadEntitlement(ctx context.Context, key string) (directory.EntitlementOutput, error) {
	records, err := c.store.FetchFiltered(ctx, c.entitlementsTable, store.FieldEquals{
		Field: "id",
		Value: key,
	})
	if err != nil {
		return directory.EntitlementOutput{}, errors.WrapStore("fetch", c.entitlementsTable, err)
	}
	if len(records) == 0 {
		return directory.EntitlementOutput{}, errors.NewNotFoundError("entitlement", key)
	}

	out := directory.EntitlementFromRecord(records[0]).Output()
	c.logger.Info().Str("key", out.Key).Msg("fetched entitlement")
	return out, nil
}

// DiscoverSchema derives the account schema from the first record of an
// unfiltered fetch. An empty directory yields a schema with the fixed
// roles and no attributes; discovery never fails solely because the
// sample set is empty.
func (c *Connector) DiscoverSchema(ctx context.Context) (*directory.Schema, error) {
	records, err := c.store.FetchAll(ctx, c.accountsTable)
	if err != nil {
		return nil, errors.WrapStore("fetch", c.accountsTable, err)
	}

	schema := directory.InferSchema(records)
	c.logger.Info().Int("attributes", len(schema.Attributes)).Msg("discovered schema")
	return schema, nil
}

// TestConnection performs the cheapest possible store read and succeeds
// iff it completes without a transport error. Success carries no
// payload.
func (c *Connector) TestConnection(ctx context.Context) error {
	if _, err := c.store.FetchAll(ctx, c.accountsTable); err != nil {
		return errors.WrapStore("fetch", c.accountsTable, err)
	}
	return nil
}
