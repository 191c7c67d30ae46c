package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/Alia5/cs2ts/internal/codegen/common"
	"github.com/Alia5/cs2ts/internal/codegen/generator"
	"github.com/Alia5/cs2ts/internal/codegen/generator/typescript"
	"github.com/Alia5/cs2ts/internal/configpaths"
	"github.com/Alia5/cs2ts/internal/log"
)

var ErrNoInput = errors.New("no input: pass a file or pipe source on stdin")

// Codegen holds the options shared by convert and watch.
type Codegen struct {
	Header  bool              `help:"Start output files with a generated-code banner"`
	TypeMap map[string]string `help:"Extra C# to TypeScript type mappings, e.g. DateTime=Date;Guid=UUID" mapsep:";" env:"CS2TS_TYPE_MAP"`
}

// newGenerator builds a generator with the user's type overrides applied.
func (c *Codegen) newGenerator(logger *slog.Logger) *generator.Generator {
	primitives := typescript.DefaultPrimitives().With(c.TypeMap)
	return generator.New(logger, typescript.NewTypeMapper(primitives))
}

// convertSource runs one conversion and records its raw input and output.
func (c *Codegen) convertSource(gen *generator.Generator, rawLogger log.RawLogger, source string, data []byte) (string, error) {
	rawLogger.Input(source, data)
	out, err := gen.Generate(string(data))
	if err != nil {
		return "", err
	}
	rawLogger.Output(source, []byte(out))
	return out, nil
}

// render adds the optional banner and a final newline to generated text
// that is about to be written to a file.
func (c *Codegen) render(source, out string) []byte {
	var b strings.Builder
	if c.Header {
		b.WriteString(common.FileHeader("//", filepath.ToSlash(source)))
	}
	b.WriteString(out)
	b.WriteString("\n")
	return []byte(b.String())
}

// outputPath maps a .cs source file to its .ts target. An empty dir keeps
// the output next to the source. Otherwise the source's directory relative
// to root is recreated under dir; with no root (or a source outside it) the
// output lands directly in dir.
func outputPath(source, root, dir string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ".ts"
	if dir == "" {
		return filepath.Join(filepath.Dir(source), base)
	}
	if root != "" {
		if rel, ok := within(root, filepath.Dir(source)); ok {
			return filepath.Join(dir, rel, base)
		}
	}
	return filepath.Join(dir, base)
}

// within returns path relative to root when path lies inside root.
func within(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

func writeFile(path string, data []byte) error {
	if err := configpaths.EnsureDir(path); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// readStdin reads piped input and refuses an interactive terminal.
func readStdin(stdin io.Reader, interactive bool) ([]byte, error) {
	if interactive {
		return nil, ErrNoInput
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
