// Package scanner extracts class, record and enum shapes from raw C# source.
//
// The scanner is purely lexical. Comments, string literals and preprocessor
// lines are masked first, then declarations are isolated by counting brace
// depth. There is no backtracking, so run time is linear in the input. All
// entry points are total: input that does not match yields empty results.
package scanner

import "github.com/Alia5/cs2ts/internal/codegen/meta"

// Scan extracts both classes and enums from src.
func Scan(src string) meta.Model {
	m := maskSource(src)
	return meta.Model{
		Classes: scanClasses(m),
		Enums:   scanEnums(m),
	}
}
