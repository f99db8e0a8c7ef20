package meta

import (
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/common"
)

// Metadata holds the request-wide information needed for code generation.
// Shared between the generator orchestrator and the per-file schema step.
type Metadata struct {
	Files           map[string]*descriptorpb.FileDescriptorProto // proto path -> descriptor
	Generate        []string                                     // files to generate, request order
	CompilerVersion string
}

// FromRequest indexes the files of a plugin request.
func FromRequest(req *pluginpb.CodeGeneratorRequest) *Metadata {
	md := &Metadata{
		Files:           make(map[string]*descriptorpb.FileDescriptorProto, len(req.GetProtoFile())),
		Generate:        req.GetFileToGenerate(),
		CompilerVersion: common.CompilerVersion(req.GetCompilerVersion()),
	}
	for _, fd := range req.GetProtoFile() {
		md.Files[fd.GetName()] = fd
	}
	return md
}
