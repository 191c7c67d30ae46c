package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/cs2ts/internal/codegen/generator/csharp"
)

type JSONToCS struct {
	File       string `arg:"" optional:"" type:"existingfile" help:"JSON sample (reads stdin when omitted)"`
	RootClass  string `help:"Name of the top-level class" default:"RootObject"`
	PascalCase bool   `help:"Convert property names to PascalCase" default:"true" negatable:""`
	Output     string `short:"o" help:"Write the classes to this file instead of stdout" type:"path"`
}

// Run is called by Kong when the json2cs command is executed.
func (j *JSONToCS) Run(logger *slog.Logger) error {
	return j.run(logger, os.Stdin, os.Stdout, stdinIsTerminal())
}

func (j *JSONToCS) run(logger *slog.Logger, stdin io.Reader, stdout io.Writer, interactive bool) error {
	var data []byte
	var err error
	if j.File == "" {
		data, err = readStdin(stdin, interactive)
	} else {
		data, err = os.ReadFile(j.File)
	}
	if err != nil {
		return err
	}

	out, err := csharp.GenerateClasses(data, csharp.Options{RootClass: j.RootClass, PascalCase: j.PascalCase})
	if err != nil {
		if j.File != "" {
			return fmt.Errorf("%s: %w", j.File, err)
		}
		return err
	}

	if j.Output == "" {
		_, err := io.WriteString(stdout, out+"\n")
		return err
	}
	if err := writeFile(j.Output, []byte(out+"\n")); err != nil {
		return err
	}
	logger.Info("Generated C# classes", "file", j.File, "output", j.Output)
	return nil
}
