package logging

import "maps"

// DefaultCensor is the replacement written over redacted values.
const DefaultCensor = "****"

// DefaultDenyList names the account fields that are masked before
// logging unless explicitly allowed.
var DefaultDenyList = []string{
	"password",
	"username",
	"email",
	"id",
	"firstName",
	"lastName",
	"displayName",
}

// Redactor masks sensitive fields in structured log payloads. It is
// configured once and passed into the connector explicitly; there is no
// shared mutable redaction state. A field is masked when it is on the
// deny list and not on the allow list.
type Redactor struct {
	deny   map[string]bool
	allow  map[string]bool
	censor string
}

// RedactorOption configures a Redactor.
type RedactorOption func(*Redactor)

// WithDenyFields sets the fields to mask, replacing the default list.
func WithDenyFields(fields ...string) RedactorOption {
	return func(r *Redactor) {
		r.deny = make(map[string]bool, len(fields))
		for _, f := range fields {
			r.deny[f] = true
		}
	}
}

// WithAllowFields exempts fields from masking even when denied.
func WithAllowFields(fields ...string) RedactorOption {
	return func(r *Redactor) {
		for _, f := range fields {
			r.allow[f] = true
		}
	}
}

// WithCensor overrides the replacement string.
func WithCensor(censor string) RedactorOption {
	return func(r *Redactor) {
		r.censor = censor
	}
}

// NewRedactor creates a Redactor with the default deny list and the
// given options applied.
func NewRedactor(opts ...RedactorOption) *Redactor {
	r := &Redactor{
		deny:   make(map[string]bool, len(DefaultDenyList)),
		allow:  make(map[string]bool),
		censor: DefaultCensor,
	}
	for _, f := range DefaultDenyList {
		r.deny[f] = true
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Redacted reports whether the named field would be masked.
func (r *Redactor) Redacted(field string) bool {
	return r.deny[field] && !r.allow[field]
}

// Fields returns a copy of the field bag with denied values masked.
// The input is never mutated.
func (r *Redactor) Fields(fields map[string]any) map[string]any {
	out := maps.Clone(fields)
	if out == nil {
		return nil
	}
	for k := range out {
		if r.Redacted(k) {
			out[k] = r.censor
		}
	}
	return out
}
