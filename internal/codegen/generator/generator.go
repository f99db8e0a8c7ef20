package generator

import (
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/common"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/meta"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/options"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/schema"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/sourceinfo"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/tsgen"
)

// ErrFileNotFound is reported when a file to generate is missing from the request.
var ErrFileNotFound = errors.New("file to generate not found in request")

// ErrSuffixRequired is reported when a standalone module would take the
// name of the message module it imports from.
var ErrSuffixRequired = errors.New("fileSuffix must not be empty without an insertionPoint")

// Generator turns plugin requests into metadata modules.
type Generator struct {
	opts   options.Options
	logger *slog.Logger
}

// New creates a Generator. opts are the base options; a request parameter
// is applied on top of them per request.
func New(opts options.Options, logger *slog.Logger) *Generator {
	return &Generator{
		opts:   opts,
		logger: logger,
	}
}

// Generate runs protoc's plugin contract: generation failures are
// reported in the response, never as a returned error.
func (g *Generator) Generate(req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}

	files, err := g.GenerateFiles(req)
	if err != nil {
		g.logger.Error("Code generation failed", "error", err)
		resp.Error = proto.String(err.Error())
		return resp
	}
	resp.File = files
	return resp
}

// GenerateFiles generates every requested file.
func (g *Generator) GenerateFiles(req *pluginpb.CodeGeneratorRequest) ([]*pluginpb.CodeGeneratorResponse_File, error) {
	opts, err := options.Parse(req.GetParameter(), g.opts)
	if err != nil {
		return nil, fmt.Errorf("parse parameter: %w", err)
	}

	md := meta.FromRequest(req)
	g.logger.Info("Generating metadata", "files", len(md.Generate), "protoc", md.CompilerVersion)

	var out []*pluginpb.CodeGeneratorResponse_File
	for _, name := range md.Generate {
		fd, ok := md.Files[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		f, err := g.GenerateFile(fd, md, opts)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", name, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// GenerateFile produces the metadata module of a single schema file.
func (g *Generator) GenerateFile(fd *descriptorpb.FileDescriptorProto, md *meta.Metadata, opts options.Options) (*pluginpb.CodeGeneratorResponse_File, error) {
	name := fd.GetName()
	if opts.InsertionPoint == "" && opts.FileSuffix == "" {
		return nil, ErrSuffixRequired
	}
	g.logger.Debug("Generating file metadata", "file", name)

	chunks, err := schema.Generate(fd, sourceinfo.FromFile(fd), opts)
	if err != nil {
		return nil, err
	}

	file := tsgen.File{
		Module: common.OutputModule(name, opts.FileSuffix),
		Chunks: chunks,
	}
	// Content spliced into another plugin's file carries no banner of its own.
	if opts.EmitHeader && opts.InsertionPoint == "" {
		version, err := common.GetVersion()
		if err != nil {
			return nil, fmt.Errorf("get version: %w", err)
		}
		file.Header = common.FileHeader(version, md.CompilerVersion, name)
	}

	out := &pluginpb.CodeGeneratorResponse_File{
		Name:    proto.String(common.OutputFileName(name, opts.FileSuffix)),
		Content: proto.String(file.Render()),
	}
	if opts.InsertionPoint != "" {
		out.InsertionPoint = proto.String(opts.InsertionPoint)
	}

	g.logger.Debug("Generated file metadata", "file", out.GetName(), "bytes", len(out.GetContent()))
	return out, nil
}
