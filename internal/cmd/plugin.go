package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
	"google.golang.org/protobuf/proto"

	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/generator"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/options"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/scanner"
	"github.com/Alia5/protoc-gen-tsmeta/internal/log"
)

// Plugin speaks the protoc plugin protocol on stdin/stdout.
type Plugin struct {
	Options options.Options `embed:""`
}

// Run is called by Kong when the plugin command is executed.
func (p *Plugin) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is a terminal: protoc-gen-tsmeta expects a CodeGeneratorRequest, run it through protoc --tsmeta_out=<dir>")
	}
	return p.Serve(os.Stdin, os.Stdout, logger, rawLogger)
}

// Serve handles a single request. Generation problems are reported to
// protoc inside the response; only IO and wire errors are returned.
func (p *Plugin) Serve(r io.Reader, w io.Writer, logger *slog.Logger, rawLogger log.RawLogger) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	rawLogger.Log(true, input)

	req, err := scanner.ReadRequest(input)
	if err != nil {
		return err
	}

	resp := generator.New(p.Options, logger).Generate(req)

	output, err := proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	rawLogger.Log(false, output)

	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
