package generator

import (
	"log/slog"
	"strings"

	"github.com/Alia5/cs2ts/internal/codegen/generator/typescript"
	"github.com/Alia5/cs2ts/internal/codegen/meta"
	"github.com/Alia5/cs2ts/internal/codegen/scanner"
)

// Generator turns C# model source into TypeScript declarations.
// It keeps no state between calls and is safe for concurrent use.
type Generator struct {
	mapper *typescript.TypeMapper
	logger *slog.Logger
}

// New returns a Generator. A nil logger discards output; a nil mapper uses
// the default primitive table.
func New(logger *slog.Logger, mapper *typescript.TypeMapper) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if mapper == nil {
		mapper = typescript.NewTypeMapper(typescript.DefaultPrimitives())
	}
	return &Generator{mapper: mapper, logger: logger}
}

var defaultGenerator = New(nil, nil)

// Generate converts src with the default settings.
func Generate(src string) (string, error) { return defaultGenerator.Generate(src) }

// Generate scans src and renders every enum and class. It fails with
// ErrEmptyInput, ErrNoClassesFound or *EmptyPropertiesError.
func (g *Generator) Generate(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", ErrEmptyInput
	}

	md := scanner.Scan(src)
	g.logger.Debug("Scanned C# source", "classes", len(md.Classes), "enums", len(md.Enums))

	if err := Validate(&md); err != nil {
		return "", err
	}
	return g.mapper.Render(&md)
}

// Validate checks that a scanned model can be emitted.
func Validate(md *meta.Model) error {
	if len(md.Classes) == 0 {
		return ErrNoClassesFound
	}
	if empty := md.EmptyClasses(); len(empty) > 0 {
		return &EmptyPropertiesError{Classes: empty}
	}
	return nil
}
