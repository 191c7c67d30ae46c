package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/Alia5/cs2ts/internal/codegen/common"
	"github.com/Alia5/cs2ts/internal/codegen/meta"
)

// propertyModifiers are the words allowed in front of a property type.
var propertyModifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"internal":  true,
	"virtual":   true,
	"override":  true,
	"abstract":  true,
	"sealed":    true,
	"static":    true,
	"new":       true,
	"required":  true,
	"unsafe":    true,
	"extern":    true,
}

// declarationKeywords can never be a property type.
var declarationKeywords = map[string]bool{
	"class":     true,
	"record":    true,
	"struct":    true,
	"interface": true,
	"enum":      true,
	"delegate":  true,
	"event":     true,
	"operator":  true,
}

// ScanClasses extracts class and record declarations, left to right, with
// their auto-properties. Classes nested in another class body are not
// reported. Malformed input yields fewer (or no) classes, never an error.
func ScanClasses(src string) []meta.ParsedClass {
	return scanClasses(maskSource(src))
}

func scanClasses(m string) []meta.ParsedClass {
	var classes []meta.ParsedClass
	for i := 0; i < len(m); {
		r, size := utf8.DecodeRuneInString(m[i:])
		if !isIdentStart(r) || !wordStartsAt(m, i) {
			i += size
			continue
		}
		word, next := readWord(m, i)
		if word != "class" && word != "record" {
			i = next
			continue
		}
		// "where T : class" constraint, not a declaration
		if p := prevNonSpace(m, i); p == ':' || p == ',' {
			i = next
			continue
		}
		cls, end, ok := parseClassDecl(m, next, word == "record")
		if ok {
			classes = append(classes, cls)
		}
		i = end
	}
	return classes
}

// parseClassDecl parses what follows a class/record keyword at pos. end is
// where scanning should resume.
func parseClassDecl(m string, pos int, isRecord bool) (cls meta.ParsedClass, end int, ok bool) {
	p := skipSpace(m, pos)
	name, after := readWord(m, p)
	if isRecord && (name == "class" || name == "struct") {
		p = skipSpace(m, after)
		name, after = readWord(m, p)
	}
	if !common.IsIdentifier(name) || declarationKeywords[name] {
		return cls, pos, false
	}
	cls.Name = strings.TrimPrefix(name, "@")

	p = skipSpace(m, after)
	if p < len(m) && m[p] == '<' {
		if closeAt := matchAngle(m, p); closeAt > 0 {
			cls.TypeParams = parseTypeParams(m[p+1 : closeAt])
			p = closeAt + 1
		}
	}

	open := -1
	for ; p < len(m); p++ {
		if m[p] == ';' {
			// body-less declaration such as a positional record
			return cls, p + 1, false
		}
		if m[p] == '{' {
			open = p
			break
		}
	}
	if open < 0 {
		return cls, len(m), false
	}
	closeAt := matchBrace(m, open)
	if closeAt < 0 {
		return cls, open + 1, false
	}

	cls.Properties = scanProperties(m[open+1 : closeAt])
	return cls, closeAt + 1, true
}

func parseTypeParams(s string) []string {
	var params []string
	for _, part := range splitTopLevel(s, ',', true) {
		fields := strings.Fields(stripAttributes(part))
		if len(fields) == 0 {
			continue
		}
		// drop in/out variance
		params = append(params, fields[len(fields)-1])
	}
	return params
}

// scanProperties walks a class body at depth 0 and collects auto-properties
// in declaration order. Nested type bodies and method bodies are skipped as
// whole blocks, so their members never leak into the result.
func scanProperties(body string) []meta.ParsedProperty {
	props := []meta.ParsedProperty{}
	start := 0
	for i := 0; i < len(body); {
		switch body[i] {
		case ';', '}':
			i++
			start = i
		case '{':
			closeAt := matchBrace(body, i)
			if closeAt < 0 {
				return props
			}
			header := body[start:i]
			block := body[i+1 : closeAt]
			i = closeAt + 1
			if prop, ok := parseProperty(header, block); ok {
				props = append(props, prop)
				i = skipInitializer(body, i)
			}
			start = i
		default:
			i++
		}
	}
	return props
}

// skipInitializer consumes an optional "= value;" following a property's
// accessor block and returns the offset after it.
func skipInitializer(body string, i int) int {
	j := skipSpace(body, i)
	if j >= len(body) || body[j] != '=' || (j+1 < len(body) && body[j+1] == '>') {
		return i
	}
	depth := 0
	for ; j < len(body); j++ {
		switch body[j] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth < 0 {
				return j
			}
		case ';':
			if depth == 0 {
				return j + 1
			}
		}
	}
	return len(body)
}

// parseProperty decides whether header + accessor block form an
// auto-property: [attributes] [modifiers] Type Name { get; set; }.
func parseProperty(header, block string) (meta.ParsedProperty, bool) {
	var prop meta.ParsedProperty
	if !isAutoAccessorBlock(block) {
		return prop, false
	}

	tokens := splitTypeTokens(stripAttributes(header))
	if len(tokens) < 2 {
		return prop, false
	}
	name := tokens[len(tokens)-1]
	typ := tokens[len(tokens)-2]
	for _, mod := range tokens[:len(tokens)-2] {
		if !propertyModifiers[mod] {
			return prop, false
		}
	}
	if !common.IsIdentifier(name) || !isTypeToken(typ) {
		return prop, false
	}

	prop.Name = strings.TrimPrefix(name, "@")
	prop.Type = typ
	prop.Nullable = strings.HasSuffix(typ, "?")
	return prop, true
}

// isAutoAccessorBlock reports whether block is a brace-free accessor list
// holding both a get and a set accessor, in any order.
func isAutoAccessorBlock(block string) bool {
	if strings.ContainsAny(block, "{}") {
		return false
	}
	var hasGet, hasSet bool
	for _, stmt := range strings.Split(block, ";") {
		fields := strings.Fields(stmt)
		if len(fields) == 0 {
			continue
		}
		switch fields[len(fields)-1] {
		case "get":
			hasGet = true
		case "set":
			hasSet = true
		}
	}
	return hasGet && hasSet
}

// splitTypeTokens splits a member header on whitespace that is not inside
// <> or [], so "Dictionary<string, int> Map" yields two tokens.
func splitTypeTokens(s string) []string {
	var tokens []string
	depth := 0
	start := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '<', '[':
			depth++
		case '>', ']':
			if depth > 0 {
				depth--
			}
		}
		space := c == ' ' || c == '\t' || c == '\n' || c == '\r'
		if space && depth == 0 {
			if start >= 0 {
				tokens = append(tokens, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			if space {
				continue
			}
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return joinDetachedSuffixes(tokens)
}

// joinDetachedSuffixes glues "[]" / "?" / "<...>" written apart from the
// type name back onto it ("int []" -> "int[]").
func joinDetachedSuffixes(tokens []string) []string {
	out := tokens[:0]
	for _, t := range tokens {
		if len(out) > 0 && (strings.HasPrefix(t, "[") || strings.HasPrefix(t, "?") || strings.HasPrefix(t, "<")) {
			out[len(out)-1] += t
			continue
		}
		out = append(out, t)
	}
	return out
}

// isTypeToken accepts identifiers optionally qualified with dots or a
// namespace alias (global::) and followed by balanced generic arguments,
// array ranks and nullable markers.
func isTypeToken(s string) bool {
	if s == "" || declarationKeywords[s] || propertyModifiers[s] {
		return false
	}
	if strings.Count(s, ":") != 2*strings.Count(s, "::") {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !isIdentStart(r) {
		return false
	}
	angle, square := 0, 0
	for _, r := range s {
		switch {
		case r == '<':
			angle++
		case r == '>':
			angle--
		case r == '[':
			square++
		case r == ']':
			square--
		case r == '.' || r == ',' || r == '?' || r == ':' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '@':
		case isIdentPart(r):
		default:
			return false
		}
		if angle < 0 || square < 0 {
			return false
		}
	}
	return angle == 0 && square == 0
}
