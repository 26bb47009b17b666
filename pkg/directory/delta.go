package directory

import "strings"

// Op is the kind of mutation an AttributeChange requests.
type Op string

// Attribute change operations.
const (
	OpAdd    Op = "Add"
	OpSet    Op = "Set"
	OpRemove Op = "Remove"
)

// AttributeChange is a single requested mutation of one named account
// attribute. Changes are transient: supplied by the caller per update
// call, never persisted.
type AttributeChange struct {
	Attribute string `json:"attribute"`
	Op        Op     `json:"op"`
	Value     string `json:"value"`
}

// Apply folds one attribute change into the account, mutating it in
// place. Dispatch is over a fixed whitelist of attribute names; unknown
// attributes are silently ignored, by contract with the host. The simple
// string attributes replace regardless of Op. The boolean attributes
// coerce through StringToBoolean. Entitlements are the only attribute
// where Op matters:
//
//   - Add appends the value, duplicates permitted.
//   - Set replaces the whole sequence with the single value. Each Set
//     discards prior content, so the last Set in an update wins.
//   - Remove drops every occurrence equal to the value.
func (a *Account) Apply(change AttributeChange) {
	switch change.Attribute {
	case FieldDisplayName:
		a.DisplayName = change.Value
	case FieldEmail:
		a.Email = change.Value
	case FieldID:
		a.ID = change.Value
	case FieldDepartment:
		a.Department = change.Value
	case FieldFirstName:
		a.FirstName = change.Value
	case FieldLastName:
		a.LastName = change.Value
	case FieldEnabled:
		a.Enabled = StringToBoolean(change.Value)
	case FieldLocked:
		a.Locked = StringToBoolean(change.Value)
	case FieldEntitlements:
		switch change.Op {
		case OpAdd:
			a.Entitlements = append(a.Entitlements, change.Value)
		case OpSet:
			a.Entitlements = []string{change.Value}
		case OpRemove:
			kept := a.Entitlements[:0]
			for _, e := range a.Entitlements {
				if e != change.Value {
					kept = append(kept, e)
				}
			}
			a.Entitlements = kept
		}
	}
}

// StringToBoolean coerces an attribute-change value to a boolean. Only
// the case-insensitive literal "false" maps to false; every other value,
// including the empty string, maps to true. This is deliberately looser
// than the record-mapping coercion, which is case-sensitive.
func StringToBoolean(s string) bool {
	return !strings.EqualFold(s, "false")
}
