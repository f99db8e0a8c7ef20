package options

import (
	"fmt"
	"strconv"
	"strings"
)

// Options selects the optional parts of the generated metadata.
// It is passed by value; nothing mutates it after parsing.
type Options struct {
	OutputEncodeMethods bool   `help:"Register encodable messages and enums in the reference table" default:"true" negatable:"" env:"TSMETA_OUTPUT_ENCODE_METHODS"`
	OutputClientImpl    bool   `help:"Register <Service>ClientImpl symbols in the reference table" default:"true" negatable:"" env:"TSMETA_OUTPUT_CLIENT_IMPL"`
	FileSuffix          string `help:"Suffix appended to the output base name (a.proto -> a<suffix>.ts); must match the other plugin's files when inserting" default:".meta" env:"TSMETA_FILE_SUFFIX"`
	InsertionPoint      string `help:"Emit into another plugin's output at this insertion point instead of creating files" default:"" env:"TSMETA_INSERTION_POINT"`
	EmitHeader          bool   `help:"Emit the generated-code banner" default:"true" negatable:"" env:"TSMETA_EMIT_HEADER"`
}

// Default mirrors the kong defaults above.
func Default() Options {
	return Options{
		OutputEncodeMethods: true,
		OutputClientImpl:    true,
		FileSuffix:          ".meta",
		EmitHeader:          true,
	}
}

// Parse applies a protoc parameter string ("k=v,k2=v2", bare "k" means true)
// on top of base and returns the result.
func Parse(param string, base Options) (Options, error) {
	opts := base
	for _, kv := range strings.Split(param, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		key, value, hasValue := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "outputEncodeMethods":
			b, err := parseBool(key, value, hasValue)
			if err != nil {
				return base, err
			}
			opts.OutputEncodeMethods = b
		case "outputClientImpl":
			b, err := parseBool(key, value, hasValue)
			if err != nil {
				return base, err
			}
			opts.OutputClientImpl = b
		case "emitHeader":
			b, err := parseBool(key, value, hasValue)
			if err != nil {
				return base, err
			}
			opts.EmitHeader = b
		case "fileSuffix":
			opts.FileSuffix = value
		case "insertionPoint":
			opts.InsertionPoint = value
		default:
			return base, fmt.Errorf("unknown option %q", key)
		}
	}
	return opts, nil
}

func parseBool(key, value string, hasValue bool) (bool, error) {
	if !hasValue {
		return true, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("option %s: invalid boolean %q", key, value)
	}
	return b, nil
}
