package schema

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/common"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/options"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/sourceinfo"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/visit"
)

// ClientImplSuffix is appended to a service name to form its client symbol.
const ClientImplSuffix = "ClientImpl"

// Reference maps a canonical name to the generated symbol for it.
type Reference struct {
	Key    string
	Symbol string
}

// References is an insertion-ordered reference table keyed by canonical name.
type References struct {
	pkg     string
	entries []Reference
	seen    map[string]bool
}

// NewReferences creates an empty table for a file in package pkg.
func NewReferences(pkg string) *References {
	return &References{pkg: pkg, seen: map[string]bool{}}
}

// Add registers localName under its canonical name. The first registration
// of a key wins; Add reports whether the entry was new.
func (r *References) Add(localName, symbol string) bool {
	key := CanonicalName(r.pkg, localName)
	if r.seen[key] {
		return false
	}
	r.seen[key] = true
	r.entries = append(r.entries, Reference{Key: key, Symbol: symbol})
	return true
}

// Entries returns the table in registration order.
func (r *References) Entries() []Reference {
	return append([]Reference(nil), r.entries...)
}

// Len returns the number of entries.
func (r *References) Len() int { return len(r.entries) }

// CanonicalName builds ".<pkg>.<name>" with every "_" of the generated name
// read as a nesting separator.
func CanonicalName(pkg, localName string) string {
	name := strings.ReplaceAll(localName, visit.NestingSeparator, ".")
	if pkg == "" {
		return "." + name
	}
	return "." + pkg + "." + name
}

// BuildReferences walks fd and returns its reference table.
func BuildReferences(fd *descriptorpb.FileDescriptorProto, si sourceinfo.Info, opts options.Options) *References {
	refs := NewReferences(fd.GetPackage())

	encodable := func(d visit.Decl) {
		if opts.OutputEncodeMethods {
			refs.Add(d.FullName, common.EscapeTypeName(d.FullName))
		}
	}
	anyDecl := func(d visit.Decl) {
		refs.Add(d.FullName, common.EscapeTypeName(d.FullName))
	}
	for d := range visit.Declarations(fd, si) {
		encodable(d)
		anyDecl(d)
	}

	for d := range visit.Services(fd, si) {
		if opts.OutputClientImpl {
			refs.Add(d.FullName, d.FullName+ClientImplSuffix)
		}
	}
	return refs
}
