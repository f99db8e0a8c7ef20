package cmd

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/generator"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/options"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/scanner"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/writer"
)

// Generate runs the generator over a descriptor set without protoc.
type Generate struct {
	Descriptors string          `arg:"" help:"FileDescriptorSet written by protoc --include_source_info --descriptor_set_out (.pb, or protojson .json)" type:"existingfile"`
	Output      string          `help:"Output directory for generated modules" default:"./gen" short:"o" env:"TSMETA_OUTPUT"`
	Files       []string        `name:"file" help:"Proto files to generate (default: every file in the set)" env:"TSMETA_FILES"`
	Options     options.Options `embed:""`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	logger.Info("Starting metadata generation", "descriptors", g.Descriptors, "output", g.Output)

	set, err := scanner.LoadDescriptorSet(g.Descriptors)
	if err != nil {
		return err
	}
	req, err := scanner.RequestFromSet(set, g.Files, "")
	if err != nil {
		return err
	}

	files, err := generator.New(g.Options, logger).GenerateFiles(req)
	if err != nil {
		return err
	}

	res, err := writer.WriteFiles(logger, g.Output, files)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("Metadata generation complete", "written", res.Written, "unchanged", res.Unchanged)
	return nil
}
