package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/internal/store"
	"github.com/agentstation/roster/pkg/errors"
)

func TestCreateAndFetchAll(t *testing.T) {
	s := New()

	rec, err := s.Create(context.Background(), store.AccountsTable, map[string]any{"id": "1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	records, err := s.FetchAll(context.Background(), store.AccountsTable)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1234", records[0].Fields["id"])
}

func TestFetchFiltered(t *testing.T) {
	s := New()
	s.Seed(store.AccountsTable, map[string]any{"id": "1234"})
	s.Seed(store.AccountsTable, map[string]any{"id": "5678"})

	t.Run("field equality", func(t *testing.T) {
		records, err := s.FetchFiltered(context.Background(), store.AccountsTable, store.FieldEquals{Field: "id", Value: "1234"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "1234", records[0].Fields["id"])
	})

	t.Run("no match is empty, not an error", func(t *testing.T) {
		records, err := s.FetchFiltered(context.Background(), store.AccountsTable, store.FieldEquals{Field: "id", Value: "nope"})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("modified since", func(t *testing.T) {
		records, err := s.FetchFiltered(context.Background(), store.AccountsTable, store.ModifiedSince{After: time.Now().Add(-time.Minute)})
		require.NoError(t, err)
		assert.Len(t, records, 2)

		records, err = s.FetchFiltered(context.Background(), store.AccountsTable, store.ModifiedSince{After: time.Now().Add(time.Minute)})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestUpdate(t *testing.T) {
	s := New()
	rec := s.Seed(store.AccountsTable, map[string]any{"id": "1234", "enabled": "true"})

	updated, err := s.Update(context.Background(), store.AccountsTable, rec.ID, map[string]any{"enabled": "false"})
	require.NoError(t, err)
	assert.Equal(t, "false", updated.Fields["enabled"])
	assert.Equal(t, "1234", updated.Fields["id"])

	_, err = s.Update(context.Background(), store.AccountsTable, "recMissing", nil)
	assert.True(t, errors.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	s := New()
	rec := s.Seed(store.AccountsTable, map[string]any{"id": "1234"})

	require.NoError(t, s.Delete(context.Background(), store.AccountsTable, rec.ID))

	records, err := s.FetchAll(context.Background(), store.AccountsTable)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.True(t, errors.IsNotFound(s.Delete(context.Background(), store.AccountsTable, rec.ID)))
}

func TestRecordsAreCopies(t *testing.T) {
	s := New()
	rec := s.Seed(store.AccountsTable, map[string]any{"id": "1234"})

	// Mutating a fetched record must not leak into the store.
	rec.Fields["id"] = "mutated"

	records, err := s.FetchAll(context.Background(), store.AccountsTable)
	require.NoError(t, err)
	assert.Equal(t, "1234", records[0].Fields["id"])
}
