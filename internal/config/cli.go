// Package config holds the root command-line definition.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/Alia5/cs2ts/internal/cmd"
)

// Log configures the global logger.
type Log struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"CS2TS_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" type:"path"`
	RawFile string `help:"Write raw C# input and TypeScript output of every conversion to this file" type:"path"`
}

// CLI is the root kong command.
type CLI struct {
	Log     Log              `embed:"" prefix:"log."`
	Config  string           `help:"Path to a JSON, YAML or TOML config file" type:"path" env:"CS2TS_CONFIG"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Convert  cmd.Convert       `cmd:"" help:"Convert C# models to TypeScript interfaces"`
	Watch    cmd.Watch         `cmd:"" help:"Regenerate TypeScript whenever watched C# files change"`
	JSONToCS cmd.JSONToCS      `cmd:"" name:"json2cs" help:"Generate C# model classes from a JSON sample"`
	Cfg      cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
