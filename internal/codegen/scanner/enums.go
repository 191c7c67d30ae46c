package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/Alia5/cs2ts/internal/codegen/common"
	"github.com/Alia5/cs2ts/internal/codegen/meta"
)

// ScanEnums extracts enum declarations anywhere in the source, including
// enums nested inside classes. Member values are dropped; only names remain.
func ScanEnums(src string) []meta.ParsedEnum {
	return scanEnums(maskSource(src))
}

func scanEnums(m string) []meta.ParsedEnum {
	var enums []meta.ParsedEnum
	for i := 0; i < len(m); {
		r, size := utf8.DecodeRuneInString(m[i:])
		if !isIdentStart(r) || !wordStartsAt(m, i) {
			i += size
			continue
		}
		word, next := readWord(m, i)
		if word != "enum" {
			i = next
			continue
		}
		e, end, ok := parseEnumDecl(m, next)
		if ok {
			enums = append(enums, e)
		}
		i = end
	}
	return enums
}

func parseEnumDecl(m string, pos int) (e meta.ParsedEnum, end int, ok bool) {
	p := skipSpace(m, pos)
	name, after := readWord(m, p)
	if !common.IsIdentifier(name) {
		return e, pos, false
	}
	e.Name = strings.TrimPrefix(name, "@")

	open := -1
	for p = after; p < len(m); p++ {
		if m[p] == ';' || m[p] == '}' {
			return e, p + 1, false
		}
		if m[p] == '{' {
			open = p
			break
		}
	}
	if open < 0 {
		return e, len(m), false
	}
	closeAt := matchBrace(m, open)
	if closeAt < 0 {
		return e, open + 1, false
	}

	e.Values = parseEnumMembers(m[open+1 : closeAt])
	return e, closeAt + 1, true
}

// parseEnumMembers splits an enum body into member names. Trailing commas
// produce no empty entries and "= value" suffixes are dropped.
func parseEnumMembers(body string) []string {
	values := []string{}
	for _, seg := range splitTopLevel(body, ',', false) {
		seg = stripAttributes(seg)
		if idx := strings.IndexByte(seg, '='); idx >= 0 {
			seg = seg[:idx]
		}
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		values = append(values, strings.TrimPrefix(seg, "@"))
	}
	return values
}
