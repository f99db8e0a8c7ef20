package schema

import (
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/common"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/tsgen"
)

// MetadataSymbol is the exported name of every file's metadata constant.
const MetadataSymbol = "protoMetadata"

// ResolveDependencies returns one metadata import per dependency of fd, in
// declaration order. suffix is the file suffix the dependency's metadata
// module was generated with. Whether the target module exists is left to
// the TypeScript compiler.
func ResolveDependencies(fd *descriptorpb.FileDescriptorProto, suffix string) []tsgen.Import {
	deps := make([]tsgen.Import, 0, len(fd.GetDependency()))
	for _, dep := range fd.GetDependency() {
		deps = append(deps, tsgen.Imp(MetadataSymbol, "./"+common.OutputModule(dep, suffix)))
	}
	return deps
}
