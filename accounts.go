package roster

import (
	"context"

	"github.com/agentstation/roster/internal/store"
	"github.com/agentstation/roster/pkg/directory"
	"github.com/agentstation/roster/pkg/errors"
)

// ListAccounts fetches every account record and maps it to its
// host-facing shape, in store order.
func (c *Connector) ListAccounts(ctx context.Context) ([]directory.AccountOutput, error) {
	records, err := c.store.FetchAll(ctx, c.accountsTable)
	if err != nil {
		return nil, errors.WrapStore("fetch", c.accountsTable, err)
	}

	outputs := make([]directory.AccountOutput, 0, len(records))
	for _, rec := range records {
		outputs = append(outputs, directory.AccountFromRecord(rec).Output())
	}

	c.logger.Info().Int("count", len(outputs)).Str("table", c.accountsTable).Msg("fetched accounts")
	return outputs, nil
}

// ListAccountsStateful lists accounts incrementally. With no cursor, or
// when the source is not stateful, it behaves as a full listing. With a
// cursor on a stateful source, it fetches only records the store
// considers modified after the cursor's timestamp. Either way a fresh
// cursor set to the current time is returned for the host to persist.
func (c *Connector) ListAccountsStateful(ctx context.Context, cursorToken string) ([]directory.AccountOutput, string, error) {
	next := directory.NewCursor()

	if !c.stateful || cursorToken == "" {
		if cursorToken != "" {
			c.logger.Info().Msg("source is not stateful, ignoring cursor and fetching all accounts")
		}
		outputs, err := c.ListAccounts(ctx)
		if err != nil {
			return nil, "", err
		}
		return outputs, next.String(), nil
	}

	cursor, err := directory.ParseCursor(cursorToken)
	if err != nil {
		return nil, "", err
	}

	records, err := c.store.FetchFiltered(ctx, c.accountsTable, store.ModifiedSince{After: cursor.Timestamp})
	if err != nil {
		return nil, "", errors.WrapStore("fetch", c.accountsTable, err)
	}

	outputs := make([]directory.AccountOutput, 0, len(records))
	for _, rec := range records {
		outputs = append(outputs, directory.AccountFromRecord(rec).Output())
	}

	c.logger.Info().
		Int("count", len(outputs)).
		Str("cursor", cursorToken).
		Msg("fetched accounts modified after cursor")
	return outputs, next.String(), nil
}

// ReadAccount resolves the business identity key to exactly one account.
// Zero matching records is NotFound; the check is on emptiness of the
// filtered fetch, never inferred from the absence of a transport error.
func (c *Connector) ReadAccount(ctx context.Context, key string) (directory.AccountOutput, error) {
	account, err := c.getAccount(ctx, key)
	if err != nil {
		return directory.AccountOutput{}, err
	}

	out := account.Output()
	c.logger.Info().Fields(c.redactor.Fields(out.Attributes)).Msg("fetched account")
	return out, nil
}

// CreateAccount validates that a business identity value is present,
// builds the account from the creation request with its defaults, writes
// it through the store, and maps the stored record back. A password is
// generated when the request does not supply one.
func (c *Connector) CreateAccount(ctx context.Context, req directory.CreateRequest) (directory.AccountOutput, error) {
	if req.Identity == "" {
		return directory.AccountOutput{}, errors.NewValidationError("identity", nil, "cannot be null")
	}

	account := directory.AccountFromCreateRequest(req)
	if account.Password == "" {
		account.Password = directory.GeneratePassword()
	}

	rec, err := c.store.Create(ctx, c.accountsTable, account.Fields())
	if err != nil {
		return directory.AccountOutput{}, errors.WrapStore("create", c.accountsTable, err)
	}

	out := directory.AccountFromRecord(rec).Output()
	c.logger.Info().Fields(c.redactor.Fields(out.Attributes)).Msg("created account")
	return out, nil
}

// UpdateAccount reads the account by key and folds the supplied changes
// into it strictly in order. Each change is applied and written through
// before the next, so later changes see the store's view of earlier
// ones; there is no conflict detection between changes touching the
// same attribute.
func (c *Connector) UpdateAccount(ctx context.Context, key string, changes []directory.AttributeChange) (directory.AccountOutput, error) {
	account, err := c.getAccount(ctx, key)
	if err != nil {
		return directory.AccountOutput{}, err
	}

	for _, change := range changes {
		account, err = c.writeChange(ctx, account, change)
		if err != nil {
			return directory.AccountOutput{}, err
		}
	}

	out := account.Output()
	c.logger.Info().Fields(c.redactor.Fields(out.Attributes)).Msg("account after changes applied")
	return out, nil
}

// DisableAccount is UpdateAccount specialized to a single synthetic
// change setting enabled to false.
func (c *Connector) DisableAccount(ctx context.Context, key string) (directory.AccountOutput, error) {
	return c.UpdateAccount(ctx, key, []directory.AttributeChange{
		{Attribute: directory.FieldEnabled, Op: directory.OpSet, Value: "false"},
	})
}

// EnableAccount is UpdateAccount specialized to a single synthetic
// change setting enabled to true.
func (c *Connector) EnableAccount(ctx context.Context, key string) (directory.AccountOutput, error) {
	return c.UpdateAccount(ctx, key, []directory.AttributeChange{
		{Attribute: directory.FieldEnabled, Op: directory.OpSet, Value: "true"},
	})
}

// UnlockAccount is UpdateAccount specialized to a single synthetic
// change setting locked to false. There is no explicit lock operation.
func (c *Connector) UnlockAccount(ctx context.Context, key string) (directory.AccountOutput, error) {
	return c.UpdateAccount(ctx, key, []directory.AttributeChange{
		{Attribute: directory.FieldLocked, Op: directory.OpSet, Value: "false"},
	})
}

// DeleteAccount resolves the key to the store-internal identifier and
// removes the backing record. Success carries no payload.
func (c *Connector) DeleteAccount(ctx context.Context, key string) error {
	account, err := c.getAccount(ctx, key)
	if err != nil {
		return err
	}

	if err := c.store.Delete(ctx, c.accountsTable, account.ExternalID); err != nil {
		return errors.WrapStore("delete", c.accountsTable, err)
	}

	c.logger.Info().Str("key", key).Msg("deleted account")
	return nil
}

// ChangePassword is intentionally unimplemented.
func (c *Connector) ChangePassword(_ context.Context, _ string) error {
	return errors.NewUnsupportedError("change-password")
}

// getAccount resolves a business identity key to its account, with
// NotFound semantics on an empty filtered fetch.
func (c *Connector) getAccount(ctx context.Context, key string) (*directory.Account, error) {
	records, err := c.store.FetchFiltered(ctx, c.accountsTable, store.FieldEquals{
		Field: directory.FieldID,
		Value: key,
	})
	if err != nil {
		return nil, errors.WrapStore("fetch", c.accountsTable, err)
	}
	if len(records) == 0 {
		return nil, errors.NewNotFoundError("account", key)
	}
	return directory.AccountFromRecord(records[0]), nil
}

// writeChange applies one attribute change to the account and writes the
// fully-resolved state through the store, returning the account as the
// store now sees it.
func (c *Connector) writeChange(ctx context.Context, account *directory.Account, change directory.AttributeChange) (*directory.Account, error) {
	account.Apply(change)

	rec, err := c.store.Update(ctx, c.accountsTable, account.ExternalID, account.Fields())
	if err != nil {
		return nil, errors.WrapStore("update", c.accountsTable, err)
	}
	return directory.AccountFromRecord(rec), nil
}
