package directory

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Field names used by the account table. The backing store may expose
// additional fields; only these participate in mapping.
const (
	FieldID           = "id"
	FieldDisplayName  = "displayName"
	FieldEmail        = "email"
	FieldDepartment   = "department"
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldEnabled      = "enabled"
	FieldLocked       = "locked"
	FieldPassword     = "password"
	FieldEntitlements = "entitlements"
)

// passwordBytes is the number of random bytes hex-encoded into a
// generated password (40 hex characters).
const passwordBytes = 20

// Account represents one identity in the backing directory.
//
// ExternalID is the store-assigned record identifier, used only to address
// the record in the store and never shown to the host. ID is the business
// identity key the host addresses accounts by.
type Account struct {
	ExternalID   string
	ID           string
	DisplayName  string
	Email        string
	Department   string
	FirstName    string
	LastName     string
	Enabled      bool
	Locked       bool
	Password     string
	Entitlements []string
}

// AccountFromRecord builds an Account from a raw store record. Mapping is
// best-effort and never fails: missing or non-string fields map to the
// empty string, and the two boolean fields fall back to their default
// polarity (enabled unless the field is exactly "false", locked only if
// the field is exactly "true").
func AccountFromRecord(rec Record) *Account {
	return &Account{
		ExternalID:   rec.ID,
		ID:           EnsureString(rec.Get(FieldID)),
		DisplayName:  EnsureString(rec.Get(FieldDisplayName)),
		Email:        EnsureString(rec.Get(FieldEmail)),
		Department:   EnsureString(rec.Get(FieldDepartment)),
		FirstName:    EnsureString(rec.Get(FieldFirstName)),
		LastName:     EnsureString(rec.Get(FieldLastName)),
		Enabled:      EnsureString(rec.Get(FieldEnabled)) != "false",
		Locked:       EnsureString(rec.Get(FieldLocked)) == "true",
		Entitlements: strings.Split(EnsureString(rec.Get(FieldEntitlements)), ","),
	}
}

// CreateRequest is the host's account-creation input: the identity value
// plus a bag of requested attributes.
type CreateRequest struct {
	Identity   string         `json:"identity"`
	Attributes map[string]any `json:"attributes"`
}

// Attribute returns the named attribute coerced to a string.
func (r CreateRequest) Attribute(name string) string {
	if r.Attributes == nil {
		return ""
	}
	return ensureAttribute(r.Attributes[name])
}

// AccountFromCreateRequest builds a new Account from a creation request.
// Email is populated from the identity value rather than the attribute
// bag because the identity attribute of the account schema is email.
// Enabled and Locked take their creation defaults. The password is carried
// through as supplied; generation for absent passwords happens at write
// time via GeneratePassword.
func AccountFromCreateRequest(req CreateRequest) *Account {
	account := &Account{
		ExternalID:  "",
		DisplayName: req.Attribute(FieldDisplayName),
		Email:       ensureAttribute(req.Identity),
		ID:          req.Attribute(FieldID),
		Department:  req.Attribute(FieldDepartment),
		FirstName:   req.Attribute(FieldFirstName),
		LastName:    req.Attribute(FieldLastName),
		Enabled:     true,
		Locked:      false,
		Password:    req.Attribute(FieldPassword),
	}

	switch v := req.Attributes[FieldEntitlements].(type) {
	case nil:
		account.Entitlements = []string{}
	case []string:
		account.Entitlements = v
	case []any:
		entitlements := make([]string, 0, len(v))
		for _, e := range v {
			entitlements = append(entitlements, ensureAttribute(e))
		}
		account.Entitlements = entitlements
	default:
		account.Entitlements = []string{ensureAttribute(v)}
	}

	return account
}

// Fields serializes the Account back into the raw field bag the store
// expects. Booleans serialize to the literal strings "true"/"false" and
// entitlements join on ",". An empty password is omitted entirely so a
// read-modify-write cycle cannot blank a stored credential.
func (a *Account) Fields() map[string]any {
	fields := map[string]any{
		FieldID:           a.ID,
		FieldDisplayName:  a.DisplayName,
		FieldEmail:        a.Email,
		FieldDepartment:   a.Department,
		FieldFirstName:    a.FirstName,
		FieldLastName:     a.LastName,
		FieldEnabled:      boolString(a.Enabled),
		FieldLocked:       boolString(a.Locked),
		FieldEntitlements: strings.Join(a.Entitlements, ","),
	}
	if a.Password != "" {
		fields[FieldPassword] = a.Password
	}
	return fields
}

// AccountOutput is the host-facing shape of an account: the business key,
// the two lifecycle flags, and the readable attributes. The password is
// write-only and never appears here.
type AccountOutput struct {
	Key        string         `json:"key" yaml:"key"`
	Disabled   bool           `json:"disabled" yaml:"disabled"`
	Locked     bool           `json:"locked" yaml:"locked"`
	Attributes map[string]any `json:"attributes" yaml:"attributes"`
}

// Output maps the Account to its host-facing shape.
func (a *Account) Output() AccountOutput {
	return AccountOutput{
		Key:      a.ID,
		Disabled: !a.Enabled,
		Locked:   a.Locked,
		Attributes: map[string]any{
			FieldID:           a.ID,
			FieldDisplayName:  a.DisplayName,
			FieldDepartment:   a.Department,
			FieldFirstName:    a.FirstName,
			FieldLastName:     a.LastName,
			FieldEmail:        a.Email,
			FieldEntitlements: a.Entitlements,
		},
	}
}

// GeneratePassword returns a freshly generated random password of
// 2*passwordBytes hex characters.
func GeneratePassword() string {
	buf := make([]byte, passwordBytes)
	// rand.Read never returns an error on supported platforms
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// ensureAttribute coerces a creation-request attribute to a string,
// treating nil and non-string values as absent.
func ensureAttribute(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
