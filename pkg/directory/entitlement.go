package directory

// Entitlement represents one group or role in the backing directory.
// Entitlements are read-only through this connector: never created,
// updated, or deleted, only listed and read.
type Entitlement struct {
	ID   string
	Name string
}

// EntitlementFromRecord builds an Entitlement from a raw store record.
// Like account mapping it never fails: missing or non-string fields map
// to the empty string.
func EntitlementFromRecord(rec Record) *Entitlement {
	return &Entitlement{
		ID:   EnsureString(rec.Get("id")),
		Name: EnsureString(rec.Get("name")),
	}
}

// EntitlementOutput is the host-facing shape of an entitlement.
type EntitlementOutput struct {
	Key        string         `json:"key" yaml:"key"`
	Type       string         `json:"type" yaml:"type"`
	Attributes map[string]any `json:"attributes" yaml:"attributes"`
}

// Output maps the Entitlement to its host-facing shape. All
// entitlements are group-typed.
func (e *Entitlement) Output() EntitlementOutput {
	return EntitlementOutput{
		Key:  e.ID,
		Type: "group",
		Attributes: map[string]any{
			"id":   e.ID,
			"name": e.Name,
		},
	}
}
