package typescript

import (
	"maps"
	"strings"
)

// Primitives is an immutable lookup from C# built-in type names to
// TypeScript types. Lookups are case-sensitive.
type Primitives struct {
	m map[string]string
}

// DefaultPrimitives returns the built-in C# -> TypeScript table.
func DefaultPrimitives() Primitives {
	return Primitives{m: map[string]string{
		"string":   "string",
		"bool":     "boolean",
		"boolean":  "boolean",
		"int":      "number",
		"long":     "number",
		"float":    "number",
		"double":   "number",
		"decimal":  "number",
		"short":    "number",
		"byte":     "number",
		"Guid":     "string",
		"DateTime": "string",
	}}
}

// With returns a copy of p with extra entries added or overridden.
func (p Primitives) With(extra map[string]string) Primitives {
	m := make(map[string]string, len(p.m)+len(extra))
	maps.Copy(m, p.m)
	for cs, ts := range extra {
		cs, ts = strings.TrimSpace(cs), strings.TrimSpace(ts)
		if cs == "" || ts == "" {
			continue
		}
		m[cs] = ts
	}
	return Primitives{m: m}
}

// Lookup returns the TypeScript type for a C# primitive name.
func (p Primitives) Lookup(name string) (string, bool) {
	ts, ok := p.m[name]
	return ts, ok
}

// Len returns the number of entries in the table.
func (p Primitives) Len() int { return len(p.m) }

// listContainers are the generic collections rendered as T[].
var listContainers = map[string]bool{
	"List":                true,
	"IEnumerable":         true,
	"ICollection":         true,
	"HashSet":             true,
	"IList":               true,
	"IReadOnlyList":       true,
	"IReadOnlyCollection": true,
	"ISet":                true,
	"IReadOnlySet":        true,
}

// mapContainers are the dictionaries rendered as Record<string, V> when
// keyed by string.
var mapContainers = map[string]bool{
	"Dictionary":          true,
	"IDictionary":         true,
	"IReadOnlyDictionary": true,
}

// TypeMapper maps C# type tokens to TypeScript type tokens.
// It holds no mutable state and is safe for concurrent use.
type TypeMapper struct {
	primitives Primitives
}

func NewTypeMapper(primitives Primitives) *TypeMapper {
	return &TypeMapper{primitives: primitives}
}

var defaultMapper = NewTypeMapper(DefaultPrimitives())

// MapType maps a token using the default primitive table.
func MapType(token string) string { return defaultMapper.Map(token) }

// Map converts a single C# type token to TypeScript. It never fails:
// unknown tokens are returned unchanged. Nullability is stripped here and
// expressed by the caller as an optional member.
//
// Precedence: nullable suffix, array suffix, list-like generics,
// Dictionary<string, T>, primitive table, pass-through. A global:: alias
// qualifier is dropped first, and System-qualified names fall back to
// their short form for the primitive lookup.
func (tm *TypeMapper) Map(token string) string {
	token = strings.TrimPrefix(strings.TrimSpace(token), "global::")

	if strings.HasSuffix(token, "?") {
		return tm.Map(token[:len(token)-1])
	}
	if strings.HasSuffix(token, "[]") {
		return tm.Map(token[:len(token)-2]) + "[]"
	}

	if name, args, ok := splitGeneric(token); ok {
		switch {
		case listContainers[name] && len(args) == 1:
			return tm.Map(args[0]) + "[]"
		case mapContainers[name] && len(args) == 2 && strings.TrimSpace(args[0]) == "string":
			return "Record<string, " + tm.Map(args[1]) + ">"
		}
	}

	if ts, ok := tm.primitives.Lookup(token); ok {
		return ts
	}
	if short, ok := strings.CutPrefix(token, "System."); ok {
		if ts, ok := tm.primitives.Lookup(short); ok {
			return ts
		}
	}
	return token
}

// splitGeneric splits "Name<A, B<C>>" into "Name" and its top-level type
// arguments. ok is false unless the whole token is one generic type.
func splitGeneric(token string) (name string, args []string, ok bool) {
	open := strings.IndexByte(token, '<')
	if open <= 0 || !strings.HasSuffix(token, ">") {
		return "", nil, false
	}
	depth := 0
	for i := open; i < len(token); i++ {
		switch token[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 && i != len(token)-1 {
				return "", nil, false
			}
		}
	}
	if depth != 0 {
		return "", nil, false
	}

	inner := token[open+1 : len(token)-1]
	depth = 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return strings.TrimSpace(token[:open]), args, true
}
