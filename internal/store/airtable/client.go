// Package airtable implements the store adapter over the Airtable REST
// API. Records live in a base addressed by id; tables are addressed by
// name and filtered server-side with filterByFormula.
package airtable

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentstation/roster/internal/store"
	"github.com/agentstation/roster/internal/transport"
	"github.com/agentstation/roster/pkg/directory"
	"github.com/agentstation/roster/pkg/errors"
)

// DefaultBaseURL is the Airtable REST API endpoint.
const DefaultBaseURL = "https://api.airtable.com/v0"

// defaultView is the table view records are read through.
const defaultView = "Grid view"

// Client talks to one Airtable base.
type Client struct {
	transport *transport.Client
	baseURL   string
	baseID    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests to point the
// client at a local server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// New creates a client for the given base. The access credential and the
// base identifier are both required; absence is a configuration error
// and no operation proceeds.
func New(apiKey, baseID string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.NewConfigError("airtable", "token must be provided from config", errors.ErrAPIKeyRequired)
	}
	if baseID == "" {
		return nil, errors.NewConfigError("airtable", "base id needed", nil)
	}

	c := &Client{
		transport: transport.New(&transport.BearerAuth{}, apiKey),
		baseURL:   DefaultBaseURL,
		baseID:    baseID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseID returns the configured base identifier.
func (c *Client) BaseID() string {
	return c.baseID
}

// recordJSON is the wire shape of one Airtable record.
type recordJSON struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// listResponse is the wire shape of a record listing.
type listResponse struct {
	Records []recordJSON `json:"records"`
}

// FetchAll implements store.Store.
func (c *Client) FetchAll(ctx context.Context, table string) ([]directory.Record, error) {
	return c.fetch(ctx, table, "")
}

// FetchFiltered implements store.Store.
func (c *Client) FetchFiltered(ctx context.Context, table string, p store.Predicate) ([]directory.Record, error) {
	return c.fetch(ctx, table, formula(p))
}

func (c *Client) fetch(ctx context.Context, table, filterFormula string) ([]directory.Record, error) {
	query := url.Values{}
	query.Set("view", defaultView)
	if filterFormula != "" {
		query.Set("filterByFormula", filterFormula)
	}

	resp, err := c.transport.Get(ctx, c.tableURL(table)+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var list listResponse
	if err := transport.DecodeResponse(resp, &list); err != nil {
		return nil, err
	}

	records := make([]directory.Record, 0, len(list.Records))
	for _, rec := range list.Records {
		records = append(records, directory.Record{ID: rec.ID, Fields: rec.Fields})
	}
	return records, nil
}

// Create implements store.Store.
func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (directory.Record, error) {
	resp, err := c.transport.Send(ctx, http.MethodPost, c.tableURL(table), map[string]any{"fields": fields})
	if err != nil {
		return directory.Record{}, err
	}

	var rec recordJSON
	if err := transport.DecodeResponse(resp, &rec); err != nil {
		return directory.Record{}, err
	}
	return directory.Record{ID: rec.ID, Fields: rec.Fields}, nil
}

// Update implements store.Store.
func (c *Client) Update(ctx context.Context, table, id string, fields map[string]any) (directory.Record, error) {
	resp, err := c.transport.Send(ctx, http.MethodPatch, c.recordURL(table, id), map[string]any{"fields": fields})
	if err != nil {
		return directory.Record{}, err
	}

	var rec recordJSON
	if err := transport.DecodeResponse(resp, &rec); err != nil {
		return directory.Record{}, err
	}
	return directory.Record{ID: rec.ID, Fields: rec.Fields}, nil
}

// Delete implements store.Store.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	resp, err := c.transport.Delete(ctx, c.recordURL(table, id))
	if err != nil {
		return err
	}
	return transport.DecodeResponse(resp, nil)
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(table))
}

func (c *Client) recordURL(table, id string) string {
	return c.tableURL(table) + "/" + url.PathEscape(id)
}

// formula renders a predicate as an Airtable filterByFormula expression.
func formula(p store.Predicate) string {
	switch pred := p.(type) {
	case store.FieldEquals:
		return fmt.Sprintf("({%s} = '%s')", pred.Field, escapeFormulaValue(pred.Value))
	case store.ModifiedSince:
		return fmt.Sprintf("IS_AFTER(LAST_MODIFIED_TIME(), '%s')", pred.After.UTC().Format(time.RFC3339))
	default:
		return ""
	}
}

// escapeFormulaValue escapes single quotes so a key value cannot break
// out of the formula string literal.
func escapeFormulaValue(v string) string {
	return strings.ReplaceAll(v, "'", "\\'")
}
