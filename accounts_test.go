package roster_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster"
	"github.com/agentstation/roster/internal/store"
	"github.com/agentstation/roster/internal/store/memory"
	"github.com/agentstation/roster/pkg/directory"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
)

func newConnector(t *testing.T, opts ...roster.Option) (*roster.Connector, *memory.Store) {
	t.Helper()
	s := memory.New()
	opts = append([]roster.Option{roster.WithLogger(logging.NewNopLogger())}, opts...)
	return roster.New(s, opts...), s
}

func seedAccount(s *memory.Store, id string, extra map[string]any) directory.Record {
	fields := map[string]any{
		"id":           id,
		"displayName":  "Account " + id,
		"email":        id + "@example.com",
		"enabled":      "true",
		"locked":       "false",
		"entitlements": "",
	}
	for k, v := range extra {
		fields[k] = v
	}
	return s.Seed(store.AccountsTable, fields)
}

func TestListAccounts(t *testing.T) {
	c, s := newConnector(t)
	seedAccount(s, "1234", nil)
	seedAccount(s, "5678", nil)

	outputs, err := c.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	// Store order is preserved; the engine does not sort.
	assert.Equal(t, "1234", outputs[0].Key)
	assert.Equal(t, "5678", outputs[1].Key)
}

func TestReadAccount(t *testing.T) {
	c, s := newConnector(t)
	seedAccount(s, "1234", nil)

	t.Run("exactly one match", func(t *testing.T) {
		out, err := c.ReadAccount(context.Background(), "1234")
		require.NoError(t, err)
		assert.Equal(t, "1234", out.Key)
		assert.False(t, out.Disabled)
	})

	t.Run("zero matches is NotFound", func(t *testing.T) {
		_, err := c.ReadAccount(context.Background(), "ghost")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestCreateAccount(t *testing.T) {
	t.Run("missing identity fails before any store call", func(t *testing.T) {
		c, s := newConnector(t)

		_, err := c.CreateAccount(context.Background(), directory.CreateRequest{
			Attributes: map[string]any{"id": "1234"},
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))

		records, err := s.FetchAll(context.Background(), store.AccountsTable)
		require.NoError(t, err)
		assert.Empty(t, records, "no record may be written on validation failure")
	})

	t.Run("creates with defaults", func(t *testing.T) {
		c, s := newConnector(t)

		out, err := c.CreateAccount(context.Background(), directory.CreateRequest{
			Identity:   "jean@example.com",
			Attributes: map[string]any{"id": "1234", "firstName": "Jean"},
		})
		require.NoError(t, err)
		assert.Equal(t, "1234", out.Key)
		assert.False(t, out.Disabled)
		assert.False(t, out.Locked)

		records, err := s.FetchAll(context.Background(), store.AccountsTable)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "jean@example.com", records[0].Fields["email"])
	})

	t.Run("generates a password when absent", func(t *testing.T) {
		c, s := newConnector(t)

		_, err := c.CreateAccount(context.Background(), directory.CreateRequest{
			Identity:   "jean@example.com",
			Attributes: map[string]any{"id": "1234"},
		})
		require.NoError(t, err)

		records, err := s.FetchAll(context.Background(), store.AccountsTable)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Regexp(t, "^[0-9a-f]{40}$", records[0].Fields["password"])
	})

	t.Run("keeps a supplied password", func(t *testing.T) {
		c, s := newConnector(t)

		_, err := c.CreateAccount(context.Background(), directory.CreateRequest{
			Identity:   "jean@example.com",
			Attributes: map[string]any{"id": "1234", "password": "hunter2"},
		})
		require.NoError(t, err)

		records, err := s.FetchAll(context.Background(), store.AccountsTable)
		require.NoError(t, err)
		assert.Equal(t, "hunter2", records[0].Fields["password"])
	})
}

func TestUpdateAccount(t *testing.T) {
	t.Run("folds changes in order", func(t *testing.T) {
		c, s := newConnector(t)
		seedAccount(s, "1234", map[string]any{"entitlements": "g0"})

		out, err := c.UpdateAccount(context.Background(), "1234", []directory.AttributeChange{
			{Attribute: "department", Op: directory.OpSet, Value: "Engineering"},
			{Attribute: "entitlements", Op: directory.OpSet, Value: "g1"},
			{Attribute: "entitlements", Op: directory.OpAdd, Value: "g2"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Engineering", out.Attributes["department"])
		assert.Equal(t, []string{"g1", "g2"}, out.Attributes["entitlements"])
	})

	t.Run("last set wins across one update call", func(t *testing.T) {
		c, s := newConnector(t)
		seedAccount(s, "1234", map[string]any{"entitlements": "g0"})

		out, err := c.UpdateAccount(context.Background(), "1234", []directory.AttributeChange{
			{Attribute: "entitlements", Op: directory.OpSet, Value: "g1"},
			{Attribute: "entitlements", Op: directory.OpSet, Value: "g2"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"g2"}, out.Attributes["entitlements"])
	})

	t.Run("unknown key is NotFound", func(t *testing.T) {
		c, _ := newConnector(t)
		_, err := c.UpdateAccount(context.Background(), "ghost", nil)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestLifecycleTransitions(t *testing.T) {
	c, s := newConnector(t)
	seedAccount(s, "1234", nil)

	t.Run("disable", func(t *testing.T) {
		out, err := c.DisableAccount(context.Background(), "1234")
		require.NoError(t, err)
		assert.True(t, out.Disabled)
	})

	t.Run("disable then enable ends enabled", func(t *testing.T) {
		_, err := c.DisableAccount(context.Background(), "1234")
		require.NoError(t, err)

		out, err := c.EnableAccount(context.Background(), "1234")
		require.NoError(t, err)
		assert.False(t, out.Disabled)

		// Enable is idempotent on an already-enabled account.
		out, err = c.EnableAccount(context.Background(), "1234")
		require.NoError(t, err)
		assert.False(t, out.Disabled)
	})

	t.Run("unlock", func(t *testing.T) {
		_, err := s.Update(context.Background(), store.AccountsTable, mustExternalID(t, s, "1234"), map[string]any{"locked": "true"})
		require.NoError(t, err)

		out, err := c.UnlockAccount(context.Background(), "1234")
		require.NoError(t, err)
		assert.False(t, out.Locked)
	})
}

func TestDeleteAccount(t *testing.T) {
	c, s := newConnector(t)
	seedAccount(s, "1234", nil)

	require.NoError(t, c.DeleteAccount(context.Background(), "1234"))

	records, err := s.FetchAll(context.Background(), store.AccountsTable)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.True(t, errors.IsNotFound(c.DeleteAccount(context.Background(), "1234")))
}

func TestChangePasswordIsUnsupported(t *testing.T) {
	c, _ := newConnector(t)
	err := c.ChangePassword(context.Background(), "1234")
	assert.True(t, errors.IsUnsupported(err))
}

func TestListAccountsStateful(t *testing.T) {
	t.Run("no cursor behaves as full list and emits a cursor", func(t *testing.T) {
		c, s := newConnector(t, roster.WithStateful(true))
		seedAccount(s, "1234", nil)

		outputs, cursor, err := c.ListAccountsStateful(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, outputs, 1)
		assert.NotEmpty(t, cursor)
	})

	t.Run("cursor restricts to records modified after it", func(t *testing.T) {
		c, s := newConnector(t, roster.WithStateful(true))
		seedAccount(s, "1234", nil)

		// Cursor timestamps have millisecond precision; step past the
		// seed's modification time before taking one.
		time.Sleep(2 * time.Millisecond)

		_, cursor, err := c.ListAccountsStateful(context.Background(), "")
		require.NoError(t, err)

		outputs, _, err := c.ListAccountsStateful(context.Background(), cursor)
		require.NoError(t, err)
		assert.Empty(t, outputs, "nothing modified since the cursor")

		seedAccount(s, "5678", nil)
		outputs, next, err := c.ListAccountsStateful(context.Background(), cursor)
		require.NoError(t, err)
		require.Len(t, outputs, 1)
		assert.Equal(t, "5678", outputs[0].Key)
		assert.NotEmpty(t, next)
	})

	t.Run("non-stateful source ignores the cursor", func(t *testing.T) {
		c, s := newConnector(t)
		seedAccount(s, "1234", nil)

		cursor := directory.NewCursor().String()
		outputs, _, err := c.ListAccountsStateful(context.Background(), cursor)
		require.NoError(t, err)
		assert.Len(t, outputs, 1)
	})

	t.Run("malformed cursor on a stateful source errors", func(t *testing.T) {
		c, _ := newConnector(t, roster.WithStateful(true))
		_, _, err := c.ListAccountsStateful(context.Background(), "not-a-cursor")
		assert.Error(t, err)
	})
}

func mustExternalID(t *testing.T, s *memory.Store, key string) string {
	t.Helper()
	records, err := s.FetchFiltered(context.Background(), store.AccountsTable, store.FieldEquals{Field: "id", Value: key})
	require.NoError(t, err)
	require.Len(t, records, 1)
	return records[0].ID
}
