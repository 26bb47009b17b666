package directory

import "sort"

// Fixed semantic roles of the account schema. The identity attribute is
// the email field, the display attribute is the business id, and the
// group attribute is the entitlements field.
const (
	IdentityAttribute = FieldEmail
	DisplayAttribute  = FieldID
	GroupAttribute    = FieldEntitlements
)

// SchemaAttribute describes one attribute of the inferred schema.
type SchemaAttribute struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
	Entitlement bool   `json:"entitlement,omitempty" yaml:"entitlement,omitempty"`
	Managed     bool   `json:"managed,omitempty" yaml:"managed,omitempty"`
	Multi       bool   `json:"multi,omitempty" yaml:"multi,omitempty"`
}

// Schema is the inferred description of the account directory: the fixed
// semantic roles plus whatever attributes a sample record happens to
// expose. A Schema is derived on every discovery call and never cached.
type Schema struct {
	IdentityAttribute string            `json:"identityAttribute" yaml:"identityAttribute"`
	DisplayAttribute  string            `json:"displayAttribute" yaml:"displayAttribute"`
	GroupAttribute    string            `json:"groupAttribute" yaml:"groupAttribute"`
	Attributes        []SchemaAttribute `json:"attributes" yaml:"attributes"`
}

// InferSchema derives a Schema from the field-name set of the first
// record in the sample. Every field is typed "string"; the group field
// is additionally flagged as a managed multi-valued entitlement
// reference. An empty sample yields an empty attribute list, not an
// error: the roles are still populated so the host can render a schema
// for an empty directory.
func InferSchema(sample []Record) *Schema {
	schema := &Schema{
		IdentityAttribute: IdentityAttribute,
		DisplayAttribute:  DisplayAttribute,
		GroupAttribute:    GroupAttribute,
		Attributes:        []SchemaAttribute{},
	}

	for _, rec := range sample {
		names := make([]string, 0, len(rec.Fields))
		for name := range rec.Fields {
			names = append(names, name)
		}
		// Field bags are unordered; sort so discovery output is stable.
		sort.Strings(names)

		for _, name := range names {
			attr := SchemaAttribute{
				Name:        name,
				Description: name,
				Type:        "string",
			}
			if name == GroupAttribute {
				attr.Entitlement = true
				attr.Managed = true
				attr.Multi = true
			}
			schema.Attributes = append(schema.Attributes, attr)
		}
		// Only the first record is representative.
		break
	}

	return schema
}
