package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/cs2ts/internal/codegen/generator"
	"github.com/Alia5/cs2ts/internal/log"
)

type Convert struct {
	Files  []string `arg:"" optional:"" type:"existingfile" help:"C# source files (reads stdin when omitted)"`
	Output string   `short:"o" help:"Write the result to this file instead of stdout" type:"path" xor:"dest"`
	OutDir string   `help:"Write one .ts file per input into this directory" type:"path" xor:"dest" env:"CS2TS_OUT_DIR"`

	Codegen `embed:""`
}

// Run is called by Kong when the convert command is executed.
func (c *Convert) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	return c.run(logger, rawLogger, os.Stdin, os.Stdout, stdinIsTerminal())
}

func (c *Convert) run(logger *slog.Logger, rawLogger log.RawLogger, stdin io.Reader, stdout io.Writer, interactive bool) error {
	if c.Output != "" && c.OutDir != "" {
		return errors.New("--output and --out-dir cannot be used together")
	}
	gen := c.newGenerator(logger)

	if len(c.Files) == 0 {
		data, err := readStdin(stdin, interactive)
		if err != nil {
			return err
		}
		out, err := c.convertSource(gen, rawLogger, "", data)
		if err != nil {
			return err
		}
		return c.emit(logger, stdout, "stdin", out)
	}

	if c.OutDir == "" {
		if len(c.Files) > 1 {
			return errors.New("--out-dir is required when converting several files")
		}
		src := c.Files[0]
		out, err := c.convertFile(gen, rawLogger, src)
		if err != nil {
			return err
		}
		return c.emit(logger, stdout, src, out)
	}

	dests, err := c.destinations()
	if err != nil {
		return err
	}
	for i, src := range c.Files {
		out, err := c.convertFile(gen, rawLogger, src)
		if err != nil {
			return err
		}
		dest := dests[i]
		if err := writeFile(dest, c.render(src, out)); err != nil {
			return err
		}
		logger.Info("Converted", "file", src, "output", dest)
	}
	return nil
}

// destinations resolves the --out-dir target of every input and fails when
// two inputs would write the same file.
func (c *Convert) destinations() ([]string, error) {
	dests := make([]string, len(c.Files))
	owner := make(map[string]string, len(c.Files))
	for i, src := range c.Files {
		dest := outputPath(src, "", c.OutDir)
		if prev, ok := owner[dest]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, src, dest)
		}
		owner[dest] = src
		dests[i] = dest
	}
	return dests, nil
}

func (c *Convert) convertFile(gen *generator.Generator, rawLogger log.RawLogger, src string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src, err)
	}
	out, err := c.convertSource(gen, rawLogger, src, data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}
	return out, nil
}

// emit writes a single result to --output, or to stdout without a banner.
func (c *Convert) emit(logger *slog.Logger, stdout io.Writer, source, out string) error {
	if c.Output == "" {
		_, err := io.WriteString(stdout, out+"\n")
		return err
	}
	if err := writeFile(c.Output, c.render(source, out)); err != nil {
		return err
	}
	logger.Info("Converted", "file", source, "output", c.Output)
	return nil
}
