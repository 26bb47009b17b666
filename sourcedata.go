package roster

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/roster/pkg/directory"
	"github.com/agentstation/roster/pkg/errors"
)

// SourceDataEntry is one row of browsable source data.
type SourceDataEntry struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	SubLabel string `json:"subLabel,omitempty" yaml:"subLabel,omitempty"`
}

// Source data keys exposed by DiscoverSourceData.
const (
	SourceDataKeyID       = "id"
	SourceDataKeyAccounts = "accounts"
)

// labelCaser renders source-data keys as display labels.
var labelCaser = cases.Title(language.English)

// DiscoverSourceData lists the source-data keys a host can read.
func (c *Connector) DiscoverSourceData(_ context.Context) []SourceDataEntry {
	return []SourceDataEntry{
		{Key: SourceDataKeyID, Label: labelCaser.String(SourceDataKeyID), SubLabel: "Base Id"},
		{Key: SourceDataKeyAccounts, Label: labelCaser.String(SourceDataKeyAccounts), SubLabel: "Query accounts in the directory"},
	}
}

// ReadSourceData reads one source-data key. The "id" key returns the
// configured base identifier; the "accounts" key requires a query and
// returns accounts whose id, display name, or email contain it. Any
// other key is a validation failure.
func (c *Connector) ReadSourceData(ctx context.Context, key, query string) ([]SourceDataEntry, error) {
	switch {
	case key == SourceDataKeyID:
		return []SourceDataEntry{
			{Key: c.baseID, Label: c.baseID, SubLabel: "Base Id"},
		}, nil

	case key == SourceDataKeyAccounts && query != "":
		records, err := c.store.FetchAll(ctx, c.accountsTable)
		if err != nil {
			return nil, errors.WrapStore("fetch", c.accountsTable, err)
		}

		var entries []SourceDataEntry
		for _, rec := range records {
			account := directory.AccountFromRecord(rec)
			if matchesQuery(account, query) {
				entries = append(entries, SourceDataEntry{
					Key:      account.ID,
					Label:    account.DisplayName,
					SubLabel: account.Email,
				})
			}
		}
		return entries, nil

	default:
		return nil, errors.NewValidationError("sourceDataKey", key, "invalid/unsupported source data key")
	}
}

func matchesQuery(account *directory.Account, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(account.ID), q) ||
		strings.Contains(strings.ToLower(account.DisplayName), q) ||
		strings.Contains(strings.ToLower(account.Email), q)
}
