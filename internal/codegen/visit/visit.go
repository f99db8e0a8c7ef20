// Package visit walks the declarations of a file descriptor as a lazy
// sequence of typed events.
package visit

import (
	"iter"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/sourceinfo"
)

// Kind tags a declaration event.
type Kind int

const (
	Message Kind = iota
	Enum
	Service
)

func (k Kind) String() string {
	switch k {
	case Message:
		return "message"
	case Enum:
		return "enum"
	case Service:
		return "service"
	default:
		return "unknown"
	}
}

// NestingSeparator joins a nested declaration name to its parent's generated name.
const NestingSeparator = "_"

// Decl is a single declaration event. Exactly one of Message, Enum and
// Service is set, matching Kind.
type Decl struct {
	Kind Kind
	// FullName is the generated type name: nested names joined with "_".
	FullName string
	// ProtoName is the dotted name relative to the package.
	ProtoName string
	Source    sourceinfo.Info

	Message *descriptorpb.DescriptorProto
	Enum    *descriptorpb.EnumDescriptorProto
	Service *descriptorpb.ServiceDescriptorProto
}

// Declarations yields every message and enum of fd. At each level enums
// come before messages and a message comes before its nested declarations.
func Declarations(fd *descriptorpb.FileDescriptorProto, si sourceinfo.Info) iter.Seq[Decl] {
	return func(yield func(Decl) bool) {
		walk(fd.GetEnumType(), fd.GetMessageType(), si,
			sourceinfo.FileEnumType, sourceinfo.FileMessageType, "", "", yield)
	}
}

// Services yields the services of fd in declaration order.
func Services(fd *descriptorpb.FileDescriptorProto, si sourceinfo.Info) iter.Seq[Decl] {
	return func(yield func(Decl) bool) {
		for i, svc := range fd.GetService() {
			d := Decl{
				Kind:      Service,
				FullName:  svc.GetName(),
				ProtoName: svc.GetName(),
				Source:    si.Open(sourceinfo.FileService, i),
				Service:   svc,
			}
			if !yield(d) {
				return
			}
		}
	}
}

// walk reports false once the consumer stops.
func walk(
	enums []*descriptorpb.EnumDescriptorProto,
	messages []*descriptorpb.DescriptorProto,
	si sourceinfo.Info,
	enumField, messageField int32,
	tsPrefix, protoPrefix string,
	yield func(Decl) bool,
) bool {
	for i, e := range enums {
		d := Decl{
			Kind:      Enum,
			FullName:  tsPrefix + e.GetName(),
			ProtoName: protoPrefix + e.GetName(),
			Source:    si.Open(enumField, i),
			Enum:      e,
		}
		if !yield(d) {
			return false
		}
	}
	for i, m := range messages {
		d := Decl{
			Kind:      Message,
			FullName:  tsPrefix + m.GetName(),
			ProtoName: protoPrefix + m.GetName(),
			Source:    si.Open(messageField, i),
			Message:   m,
		}
		if !yield(d) {
			return false
		}
		if !walk(m.GetEnumType(), m.GetNestedType(), d.Source,
			sourceinfo.MessageEnumType, sourceinfo.MessageNestedType,
			d.FullName+NestingSeparator, d.ProtoName+".", yield) {
			return false
		}
	}
	return true
}
