package config

import (
	"github.com/alecthomas/kong"

	"github.com/Alia5/protoc-gen-tsmeta/internal/cmd"
)

// Log configures process logging.
type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"TSMETA_LOG_LEVEL"`
	File    string `help:"Also write the log to this file" env:"TSMETA_LOG_FILE"`
	RawFile string `help:"Dump raw plugin requests/responses as hex to this file" env:"TSMETA_LOG_RAW_FILE"`
}

// CLI is the root command line. With no command it runs as a protoc plugin.
type CLI struct {
	Config  string           `help:"Configuration file (json, yaml or toml)" env:"TSMETA_CONFIG" placeholder:"FILE"`
	Log     Log              `embed:"" prefix:"log."`
	Version kong.VersionFlag `help:"Print version and exit"`

	Plugin   cmd.Plugin        `cmd:"" default:"withargs" help:"Run as a protoc plugin (default; reads a CodeGeneratorRequest on stdin)"`
	Generate cmd.Generate      `cmd:"" help:"Generate metadata modules from a descriptor set"`
	Describe cmd.Describe      `cmd:"" help:"Print the reference table of a descriptor set"`
	Cfg      cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
