package directory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/pkg/directory"
)

func TestAccountFromRecord(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		account := directory.AccountFromRecord(directory.Record{
			ID: "recABC123",
			Fields: map[string]any{
				"id":           "1234",
				"displayName":  "Jean Moreau",
				"email":        "jean@example.com",
				"department":   "Engineering",
				"firstName":    "Jean",
				"lastName":     "Moreau",
				"enabled":      "true",
				"locked":       "false",
				"entitlements": "g1,g2",
			},
		})

		assert.Equal(t, "recABC123", account.ExternalID)
		assert.Equal(t, "1234", account.ID)
		assert.Equal(t, "Jean Moreau", account.DisplayName)
		assert.Equal(t, "jean@example.com", account.Email)
		assert.True(t, account.Enabled)
		assert.False(t, account.Locked)
		assert.Equal(t, []string{"g1", "g2"}, account.Entitlements)
	})

	t.Run("non-string fields coerce to empty string", func(t *testing.T) {
		account := directory.AccountFromRecord(directory.Record{
			ID: "recXYZ",
			Fields: map[string]any{
				"id":          42,
				"displayName": true,
				"email":       []string{"a@example.com"},
				"department":  map[string]any{"name": "Eng"},
			},
		})

		assert.Equal(t, "", account.ID)
		assert.Equal(t, "", account.DisplayName)
		assert.Equal(t, "", account.Email)
		assert.Equal(t, "", account.Department)
	})

	t.Run("boolean polarity", func(t *testing.T) {
		tests := []struct {
			name        string
			fields      map[string]any
			wantEnabled bool
			wantLocked  bool
		}{
			{"absent fields take defaults", map[string]any{}, true, false},
			{"enabled false only on exact literal", map[string]any{"enabled": "false"}, false, false},
			{"enabled mapping is case-sensitive", map[string]any{"enabled": "FALSE"}, true, false},
			{"locked true only on exact literal", map[string]any{"locked": "true"}, false, true},
			{"locked mapping is case-sensitive", map[string]any{"locked": "TRUE"}, true, false},
			{"garbage strings keep defaults", map[string]any{"enabled": "maybe", "locked": "maybe"}, true, false},
			{"non-string booleans keep defaults", map[string]any{"enabled": false, "locked": true}, true, false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				account := directory.AccountFromRecord(directory.Record{Fields: tt.fields})
				assert.Equal(t, tt.wantEnabled, account.Enabled, "enabled")
				assert.Equal(t, tt.wantLocked, account.Locked, "locked")
			})
		}
	})

	t.Run("absent entitlements yield one empty element", func(t *testing.T) {
		account := directory.AccountFromRecord(directory.Record{Fields: map[string]any{}})
		// Splitting the empty string produces [""], not []. Consumers
		// must tolerate the degenerate element.
		assert.Equal(t, []string{""}, account.Entitlements)
	})
}

func TestAccountFields(t *testing.T) {
	t.Run("round-trips booleans and entitlements", func(t *testing.T) {
		account := directory.AccountFromRecord(directory.Record{
			Fields: map[string]any{
				"enabled":      "false",
				"locked":       "true",
				"entitlements": "g1,g2",
			},
		})
		require.False(t, account.Enabled)
		require.True(t, account.Locked)

		fields := account.Fields()
		assert.Equal(t, "false", fields["enabled"])
		assert.Equal(t, "true", fields["locked"])
		assert.Equal(t, "g1,g2", fields["entitlements"])
	})

	t.Run("serializes all mapped fields", func(t *testing.T) {
		account := &directory.Account{
			ID:           "1234",
			DisplayName:  "Jean Moreau",
			Email:        "jean@example.com",
			Enabled:      true,
			Password:     "hunter2",
			Entitlements: []string{"g1"},
		}
		fields := account.Fields()
		assert.Equal(t, "1234", fields["id"])
		assert.Equal(t, "true", fields["enabled"])
		assert.Equal(t, "false", fields["locked"])
		assert.Equal(t, "hunter2", fields["password"])
		assert.Equal(t, "g1", fields["entitlements"])
	})

	t.Run("empty password is omitted", func(t *testing.T) {
		account := &directory.Account{ID: "1234", Entitlements: []string{}}
		assert.NotContains(t, account.Fields(), "password")
	})
}

func TestAccountFromCreateRequest(t *testing.T) {
	t.Run("defaults and identity mapping", func(t *testing.T) {
		account := directory.AccountFromCreateRequest(directory.CreateRequest{
			Identity: "jean@example.com",
			Attributes: map[string]any{
				"id":        "1234",
				"firstName": "Jean",
			},
		})

		assert.Equal(t, "jean@example.com", account.Email)
		assert.Equal(t, "1234", account.ID)
		assert.Equal(t, "Jean", account.FirstName)
		assert.True(t, account.Enabled)
		assert.False(t, account.Locked)
		assert.Equal(t, []string{}, account.Entitlements)
	})

	t.Run("scalar entitlement becomes single-element sequence", func(t *testing.T) {
		account := directory.AccountFromCreateRequest(directory.CreateRequest{
			Identity:   "jean@example.com",
			Attributes: map[string]any{"entitlements": "g1"},
		})
		assert.Equal(t, []string{"g1"}, account.Entitlements)
	})

	t.Run("array entitlements carry through", func(t *testing.T) {
		account := directory.AccountFromCreateRequest(directory.CreateRequest{
			Identity:   "jean@example.com",
			Attributes: map[string]any{"entitlements": []any{"g1", "g2"}},
		})
		assert.Equal(t, []string{"g1", "g2"}, account.Entitlements)
	})
}

func TestAccountOutput(t *testing.T) {
	account := directory.AccountFromRecord(directory.Record{
		ID: "recABC",
		Fields: map[string]any{
			"id":       "1234",
			"enabled":  "false",
			"locked":   "true",
			"password": "secret",
		},
	})

	out := account.Output()
	assert.Equal(t, "1234", out.Key)
	assert.True(t, out.Disabled)
	assert.True(t, out.Locked)
	// The password is write-only and the store internal id is host-hidden.
	assert.NotContains(t, out.Attributes, "password")
	assert.NotContains(t, out.Attributes, "externalId")
}

func TestGeneratePassword(t *testing.T) {
	password := directory.GeneratePassword()
	assert.Len(t, password, 40)
	assert.Regexp(t, "^[0-9a-f]{40}$", password)
	assert.NotEqual(t, password, directory.GeneratePassword())
}
