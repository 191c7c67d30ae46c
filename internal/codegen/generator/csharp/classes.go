// Package csharp generates C# model classes from a JSON sample.
//
// The output uses auto-properties with initializers, so it can be fed
// straight back into the TypeScript generator.
package csharp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Alia5/cs2ts/internal/codegen/common"
)

// DefaultRootClass names the top-level class when none is given.
const DefaultRootClass = "RootObject"

var (
	ErrEmptyJSON = errors.New("please paste a JSON sample")
	ErrNotObject = errors.New("JSON root must be an object or an array of objects")
)

// Options controls class and property naming.
type Options struct {
	RootClass  string
	PascalCase bool
}

// GenerateClasses builds one C# class per JSON object in data, root first,
// then nested classes depth-first in key order.
//
// JSON is decoded as YAML (a strict superset) so object key order survives.
func GenerateClasses(data []byte, opts Options) (string, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return "", ErrEmptyJSON
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return "", ErrNotObject
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(trimmed), &doc); err != nil {
		return "", fmt.Errorf("parse JSON: %w", err)
	}
	if len(doc.Content) == 0 {
		return "", ErrEmptyJSON
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
			return "", ErrNotObject
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return "", ErrNotObject
	}

	rootName := strings.TrimSpace(opts.RootClass)
	if rootName == "" {
		rootName = DefaultRootClass
	}
	if !common.IsIdentifier(rootName) {
		return "", fmt.Errorf("invalid root class name %q", rootName)
	}

	b := classBuilder{pascal: opts.PascalCase}
	return strings.Join(b.build(root, rootName), "\n\n"), nil
}

type classBuilder struct {
	pascal bool
}

// build renders the class for obj followed by every class it references.
func (b *classBuilder) build(obj *yaml.Node, name string) []string {
	var props []string
	var nested []string

	// mapping content alternates key, value
	for i := 0; i+1 < len(obj.Content); i += 2 {
		key, val := obj.Content[i], obj.Content[i+1]
		prop := b.propertyName(key.Value)

		switch {
		case val.Kind == yaml.MappingNode:
			nested = append(nested, b.build(val, prop)...)
			props = append(props, fmt.Sprintf("    public %[1]s %[1]s { get; set; } = new %[1]s();", prop))
		case val.Kind == yaml.SequenceNode && len(val.Content) > 0 && val.Content[0].Kind == yaml.MappingNode:
			item := prop + "Item"
			nested = append(nested, b.build(val.Content[0], item)...)
			props = append(props, fmt.Sprintf("    public %s[] %s { get; set; } = [];", item, prop))
		default:
			typ := typeOf(val)
			props = append(props, fmt.Sprintf("    public %s %s { get; set; } = %s;", typ, prop, defaultFor(typ)))
		}
	}

	var cls strings.Builder
	cls.WriteString("public class " + name + "\n{\n")
	for _, p := range props {
		cls.WriteString(p + "\n")
	}
	cls.WriteString("}")

	return append([]string{cls.String()}, nested...)
}

func (b *classBuilder) propertyName(key string) string {
	name := common.SanitizeIdentifier(key)
	if b.pascal {
		name = common.ToPascalCase(name)
	}
	if name == "" {
		return "Property"
	}
	return common.SanitizeLeadingDigit(name)
}

// typeOf maps a scalar or sequence node to a C# type.
func typeOf(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return "object[]"
		}
		return typeOf(n.Content[0]) + "[]"
	case yaml.MappingNode:
		return "object"
	case yaml.AliasNode:
		return typeOf(n.Alias)
	}

	switch n.ShortTag() {
	case "!!str":
		return "string"
	case "!!bool":
		return "bool"
	case "!!int":
		return "int"
	case "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
			return "int"
		}
		return "double"
	default:
		return "object"
	}
}

func defaultFor(typ string) string {
	switch {
	case typ == "string":
		return `""`
	case typ == "bool":
		return "false"
	case strings.HasSuffix(typ, "[]"):
		return "[]"
	case typ == "object":
		return "new()"
	default:
		return "0"
	}
}
