// Package schema builds the ProtoMetadata object of a schema file: the
// sanitized descriptor, the reference table and the dependency list.
package schema

import (
	"encoding/json"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/common"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/options"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/sourceinfo"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/tsgen"
)

// DescriptorModule exports the plain-object descriptor typings.
const DescriptorModule = "protobufjs/ext/descriptor"

// InterfaceName is the TypeScript type of the metadata constant.
const InterfaceName = "ProtoMetadata"

// MetadataInterface declares ProtoMetadata. It must precede the constant.
func MetadataInterface() tsgen.Code {
	return tsgen.New(
		"export interface ", tsgen.Def(InterfaceName), " {\n",
		"  fileDescriptor: ", tsgen.Imp("IFileDescriptorProto", DescriptorModule), ";\n",
		"  references: { [key: string]: any };\n",
		"  dependencies?: ", InterfaceName, "[];\n",
		"}\n",
	)
}

// Generate returns the metadata chunks of fd: the interface, then the
// protoMetadata constant. Without an insertion point the chunks form a
// module of their own and import the referenced symbols from the message
// module of fd.
func Generate(fd *descriptorpb.FileDescriptorProto, si sourceinfo.Info, opts options.Options) ([]tsgen.Code, error) {
	refs := BuildReferences(fd, si, opts)
	deps := ResolveDependencies(fd, opts.FileSuffix)

	symbolModule := ""
	if opts.InsertionPoint == "" {
		symbolModule = "./" + common.ModuleName(fd.GetName())
	}

	descriptor, err := Object(fd)
	if err != nil {
		return nil, err
	}

	return []tsgen.Code{
		MetadataInterface(),
		metadataConst(descriptor, refs, deps, symbolModule),
	}, nil
}

// metadataConst renders the constant. Symbols are imported from
// symbolModule, or taken as local names when it is empty.
func metadataConst(descriptor []byte, refs *References, deps []tsgen.Import, symbolModule string) tsgen.Code {
	entries := make([]tsgen.Code, 0, refs.Len())
	for _, ref := range refs.Entries() {
		var symbol any = ref.Symbol
		if symbolModule != "" {
			symbol = tsgen.Imp(ref.Symbol, symbolModule)
		}
		entries = append(entries, tsgen.New("    ", quote(ref.Key), ": ", symbol))
	}
	depCodes := make([]tsgen.Code, 0, len(deps))
	for _, dep := range deps {
		depCodes = append(depCodes, tsgen.New(dep))
	}

	c := tsgen.New(
		"export const ", tsgen.Def(MetadataSymbol), ": ", InterfaceName, " = {\n",
		"  fileDescriptor: ", indent(string(descriptor), "  "), " as any,\n",
	)
	if len(entries) == 0 {
		c = c.Append("  references: {},\n")
	} else {
		c = c.Append("  references: {\n", tsgen.Join(entries, ",\n"), ",\n  },\n")
	}
	c = c.Append("  dependencies: [", tsgen.Join(depCodes, ", "), "],\n};\n")
	return c
}

// quote renders s as a JavaScript string literal.
func quote(s string) string {
	b, _ := json.Marshal(s) // a string always marshals
	return string(b)
}

// indent prefixes every line but the first.
func indent(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
