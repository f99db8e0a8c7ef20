package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/options"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/schema"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/sourceinfo"
)

func build(fd *descriptorpb.FileDescriptorProto, opts options.Options) []schema.Reference {
	return schema.BuildReferences(fd, sourceinfo.FromFile(fd), opts).Entries()
}

func TestBuildReferences(t *testing.T) {
	msgs := []*descriptorpb.DescriptorProto{{Name: proto.String("Foo")}}
	svcs := []*descriptorpb.ServiceDescriptorProto{{Name: proto.String("Bar")}}

	tests := []struct {
		name     string
		fd       *descriptorpb.FileDescriptorProto
		opts     options.Options
		expected []schema.Reference
	}{
		{
			name:     "no declarations",
			fd:       &descriptorpb.FileDescriptorProto{Package: proto.String("pkg")},
			opts:     options.Options{OutputEncodeMethods: true, OutputClientImpl: true},
			expected: nil,
		},
		{
			name: "message and service with everything enabled",
			fd:   &descriptorpb.FileDescriptorProto{Package: proto.String("pkg"), MessageType: msgs, Service: svcs},
			opts: options.Options{OutputEncodeMethods: true, OutputClientImpl: true},
			expected: []schema.Reference{
				{Key: ".pkg.Foo", Symbol: "Foo"},
				{Key: ".pkg.Bar", Symbol: "BarClientImpl"},
			},
		},
		{
			name: "encode methods disabled still registers messages once",
			fd:   &descriptorpb.FileDescriptorProto{Package: proto.String("pkg"), MessageType: msgs},
			opts: options.Options{},
			expected: []schema.Reference{
				{Key: ".pkg.Foo", Symbol: "Foo"},
			},
		},
		{
			name: "client impl disabled skips services",
			fd:   &descriptorpb.FileDescriptorProto{Package: proto.String("pkg"), MessageType: msgs, Service: svcs},
			opts: options.Options{OutputEncodeMethods: true},
			expected: []schema.Reference{
				{Key: ".pkg.Foo", Symbol: "Foo"},
			},
		},
		{
			name: "nested declarations and underscores",
			fd: &descriptorpb.FileDescriptorProto{
				Package: proto.String("acme.v1"),
				EnumType: []*descriptorpb.EnumDescriptorProto{
					{Name: proto.String("Color")},
				},
				MessageType: []*descriptorpb.DescriptorProto{
					{
						Name:       proto.String("Outer"),
						NestedType: []*descriptorpb.DescriptorProto{{Name: proto.String("Inner")}},
						EnumType:   []*descriptorpb.EnumDescriptorProto{{Name: proto.String("Kind")}},
					},
					{Name: proto.String("snake_case")},
				},
			},
			opts: options.Default(),
			expected: []schema.Reference{
				{Key: ".acme.v1.Color", Symbol: "Color"},
				{Key: ".acme.v1.Outer", Symbol: "Outer"},
				{Key: ".acme.v1.Outer.Kind", Symbol: "Outer_Kind"},
				{Key: ".acme.v1.Outer.Inner", Symbol: "Outer_Inner"},
				{Key: ".acme.v1.snake.case", Symbol: "snake_case"},
			},
		},
		{
			name: "reserved names are escaped in the symbol only",
			fd: &descriptorpb.FileDescriptorProto{
				Package:     proto.String("pkg"),
				MessageType: []*descriptorpb.DescriptorProto{{Name: proto.String("String")}},
			},
			opts: options.Default(),
			expected: []schema.Reference{
				{Key: ".pkg.String", Symbol: "String$"},
			},
		},
		{
			name: "first registration wins on key collision",
			fd: &descriptorpb.FileDescriptorProto{
				Package:     proto.String("pkg"),
				MessageType: []*descriptorpb.DescriptorProto{{Name: proto.String("Bar")}},
				Service:     svcs,
			},
			opts: options.Default(),
			expected: []schema.Reference{
				{Key: ".pkg.Bar", Symbol: "Bar"},
			},
		},
		{
			name: "empty package",
			fd: &descriptorpb.FileDescriptorProto{
				MessageType: msgs,
			},
			opts: options.Default(),
			expected: []schema.Reference{
				{Key: ".Foo", Symbol: "Foo"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, build(tt.fd, tt.opts))
		})
	}
}

func TestReferencesAdd(t *testing.T) {
	refs := schema.NewReferences("pkg")
	assert.True(t, refs.Add("Foo", "Foo"))
	assert.False(t, refs.Add("Foo", "Other"))
	assert.True(t, refs.Add("Foo_Bar", "Foo_Bar"))
	assert.Equal(t, 2, refs.Len())

	entries := refs.Entries()
	entries[0].Symbol = "changed"
	assert.Equal(t, "Foo", refs.Entries()[0].Symbol)
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, ".pkg.Outer.Inner", schema.CanonicalName("pkg", "Outer_Inner"))
	assert.Equal(t, ".a.b.Msg", schema.CanonicalName("a.b", "Msg"))
	assert.Equal(t, ".Msg", schema.CanonicalName("", "Msg"))
}
