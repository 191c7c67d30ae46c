package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maskSource blanks out comment bodies and string/char literal contents so
// that braces, commas and keywords inside them never affect structure.
// Every masked byte becomes a space except '\n', so offsets and line
// numbers of the result match the input.
func maskSource(src string) string {
	b := []byte(src)
	n := len(b)
	blank := func(from, to int) {
		for k := from; k < to && k < n; k++ {
			if b[k] != '\n' {
				b[k] = ' '
			}
		}
	}

	for i := 0; i < n; {
		c := b[i]
		switch {
		case c == '/' && i+1 < n && b[i+1] == '/':
			end := i
			for end < n && b[end] != '\n' {
				end++
			}
			blank(i, end)
			i = end
		case c == '/' && i+1 < n && b[i+1] == '*':
			end := strings.Index(string(b[i+2:]), "*/")
			if end < 0 {
				blank(i, n)
				return string(b)
			}
			end += i + 4
			blank(i, end)
			i = end
		case c == '#' && atLineStart(b, i):
			// preprocessor directive (#region, #nullable, ...)
			end := i
			for end < n && b[end] != '\n' {
				end++
			}
			blank(i, end)
			i = end
		case c == '"':
			i = maskString(b, i, blank)
		case c == '\'':
			end := i + 1
			for end < n && b[end] != '\'' && b[end] != '\n' {
				if b[end] == '\\' {
					end++
				}
				end++
			}
			blank(i+1, end)
			i = end + 1
		default:
			i++
		}
	}
	return string(b)
}

// maskString blanks the contents of the string literal opening at b[i] and
// returns the offset just past its closing delimiter.
func maskString(b []byte, i int, blank func(from, to int)) int {
	n := len(b)

	quotes := 0
	for i+quotes < n && b[i+quotes] == '"' {
		quotes++
	}
	if quotes >= 3 {
		// raw string literal: ends at a run of at least as many quotes
		for j := i + quotes; j < n; j++ {
			if b[j] != '"' {
				continue
			}
			run := 0
			for j+run < n && b[j+run] == '"' {
				run++
			}
			if run >= quotes {
				blank(i+quotes, j)
				return j + run
			}
			j += run - 1
		}
		blank(i+quotes, n)
		return n
	}

	if isVerbatimPrefix(b, i) {
		j := i + 1
		for j < n {
			if b[j] == '"' {
				if j+1 < n && b[j+1] == '"' {
					j += 2
					continue
				}
				break
			}
			j++
		}
		blank(i+1, j)
		return j + 1
	}

	j := i + 1
	for j < n && b[j] != '"' && b[j] != '\n' {
		if b[j] == '\\' {
			j++
		}
		j++
	}
	blank(i+1, j)
	return j + 1
}

func atLineStart(b []byte, i int) bool {
	for i--; i >= 0; i-- {
		switch b[i] {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return true
		}
		return false
	}
	return true
}

func isVerbatimPrefix(b []byte, i int) bool {
	if i >= 1 && b[i-1] == '@' {
		return true
	}
	return i >= 2 && b[i-1] == '$' && b[i-2] == '@'
}

// matchBrace returns the offset of the '}' closing the '{' at open, or -1
// when the input ends first.
func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchAngle returns the offset of the '>' closing the '<' at open, or -1.
func matchAngle(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i
			}
		case '{', '}', ';':
			return -1
		}
	}
	return -1
}

// splitTopLevel splits s on sep, ignoring separators nested inside (), []
// or {}. With angles set, <> also nests; leave it off where shift operators
// may appear.
func splitTopLevel(s string, sep byte, angles bool) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !angles && (c == '<' || c == '>') {
			continue
		}
		switch c {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// stripAttributes removes leading "[...]" attribute groups.
func stripAttributes(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasPrefix(s, "[") {
		depth := 0
		end := -1
		for i := 0; i < len(s) && end < 0; i++ {
			switch s[i] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					end = i
				}
			}
		}
		if end < 0 {
			return ""
		}
		s = strings.TrimSpace(s[end+1:])
	}
	return s
}

func isIdentStart(r rune) bool { return r == '_' || r == '@' || unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

// readWord returns the identifier starting at i and the offset after it.
func readWord(s string, i int) (string, int) {
	start := i
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !(isIdentPart(r) || (i == start && r == '@')) {
			break
		}
		i += size
	}
	return s[start:i], i
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

// wordStartsAt reports whether a whole word starts at i, i.e. the previous
// rune is not part of an identifier (or a member-access dot).
func wordStartsAt(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isIdentPart(r) && r != '.' && r != '@'
}

// prevNonSpace returns the last non-whitespace byte before i, or 0.
func prevNonSpace(s string, i int) byte {
	for i--; i >= 0; i-- {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return s[i]
	}
	return 0
}
