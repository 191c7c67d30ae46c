package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToCamelCase lowercases the first character of a member name and keeps the
// rest verbatim, so acronyms survive ("UserID" -> "userID").
func ToCamelCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// ToPascalCase uppercases the first word character and each word character
// that follows an underscore, consuming one underscore per match:
// "user_name" -> "UserName", "_id" -> "id", "a__b" -> "A_b". Word characters
// are ASCII letters, digits and '_'.
func ToPascalCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	if i < len(s) && isWordByte(s[i]) {
		if s[i] != '_' {
			b.WriteByte(upperASCII(s[i]))
		}
		i++
	}
	for i < len(s) {
		if s[i] == '_' && i+1 < len(s) && isWordByte(s[i+1]) {
			b.WriteByte(upperASCII(s[i+1]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func upperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// SanitizeIdentifier replaces every character that is not valid in a C#
// identifier with '_'.
func SanitizeIdentifier(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, s)
}

// SanitizeLeadingDigit prefixes names that start with a digit with "Num"
// to keep identifiers valid in target languages.
func SanitizeLeadingDigit(name string) string {
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "Num" + name
	}
	return name
}

// IsIdentifier reports whether s is a plain C# identifier (letters, digits,
// underscores, not starting with a digit). A leading '@' verbatim marker is allowed.
func IsIdentifier(s string) bool {
	s = strings.TrimPrefix(s, "@")
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
