package meta

// ParsedProperty is a single auto-property found in a class body.
type ParsedProperty struct {
	Name     string `json:"name"`     // identifier as written (e.g., "UserID")
	Type     string `json:"type"`     // raw type token (e.g., "List<int>?")
	Nullable bool   `json:"nullable"` // type token ends with '?'
}

// ParsedClass is a class or record declaration and its auto-properties in
// declaration order.
type ParsedClass struct {
	Name       string           `json:"name"`
	TypeParams []string         `json:"typeParams,omitempty"` // generic parameters written after the name
	Properties []ParsedProperty `json:"properties"`
}

// ParsedEnum is an enum declaration with its member names in declaration order.
// Explicit values are not kept.
type ParsedEnum struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Model holds everything scanned from one C# source blob.
// Shared between the scanner and the language generators.
type Model struct {
	Classes []ParsedClass `json:"classes"`
	Enums   []ParsedEnum  `json:"enums"`
}

// EmptyClasses returns the names of classes that have no properties.
func (m *Model) EmptyClasses() []string {
	var names []string
	for _, c := range m.Classes {
		if len(c.Properties) == 0 {
			names = append(names, c.Name)
		}
	}
	return names
}
