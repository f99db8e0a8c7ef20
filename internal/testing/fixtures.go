package testing

import (
	"log/slog"
	"strings"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// NewLogger returns a debug-level logger that writes through t.Log.
func NewLogger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// CommonFile is a dependency-free schema file with a commented enum.
func CommonFile() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("common/money.proto"),
		Package: proto.String("common"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("Currency"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("CURRENCY_UNSPECIFIED"), Number: proto.Int32(0)},
				{Name: proto.String("CURRENCY_EUR"), Number: proto.Int32(1)},
			},
		}},
		SourceCodeInfo: &descriptorpb.SourceCodeInfo{
			Location: []*descriptorpb.SourceCodeInfo_Location{
				{Path: []int32{}, Span: []int32{0, 0, 8, 0}},
				{Path: []int32{5, 0}, Span: []int32{3, 0, 6, 1}, LeadingComments: proto.String(" ISO 4217 currency.\n")},
			},
		},
		Syntax: proto.String("proto3"),
	}
}

// ShopFile imports CommonFile and declares a nested message and a service.
func ShopFile() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String("shop/v1/order.proto"),
		Package:    proto.String("shop.v1"),
		Dependency: []string{"common/money.proto"},
		MessageType: []*descriptorpb.DescriptorProto{{
			Name: proto.String("Order"),
			Field: []*descriptorpb.FieldDescriptorProto{{
				Name:     proto.String("currency"),
				Number:   proto.Int32(1),
				Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
				Type:     descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum(),
				TypeName: proto.String(".common.Currency"),
				JsonName: proto.String("currency"),
			}},
			NestedType: []*descriptorpb.DescriptorProto{{Name: proto.String("Line")}},
		}},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("Checkout"),
			Method: []*descriptorpb.MethodDescriptorProto{{
				Name:       proto.String("Place"),
				InputType:  proto.String(".shop.v1.Order"),
				OutputType: proto.String(".shop.v1.Order"),
			}},
		}},
		SourceCodeInfo: &descriptorpb.SourceCodeInfo{
			Location: []*descriptorpb.SourceCodeInfo_Location{
				{Path: []int32{}, Span: []int32{0, 0, 20, 0}},
				{Path: []int32{4, 0}, Span: []int32{5, 0, 10, 1}, LeadingComments: proto.String(" An order.\n")},
				{Path: []int32{4, 0, 2, 0}, Span: []int32{6, 2, 30}},
				{Path: []int32{6, 0}, Span: []int32{12, 0, 14, 1}, TrailingComments: proto.String(" Checkout flow.\n")},
			},
		},
		Syntax: proto.String("proto3"),
	}
}

// Request returns a request generating ShopFile and CommonFile.
func Request(parameter string) *pluginpb.CodeGeneratorRequest {
	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"common/money.proto", "shop/v1/order.proto"},
		ProtoFile:      []*descriptorpb.FileDescriptorProto{CommonFile(), ShopFile()},
		CompilerVersion: &pluginpb.Version{
			Major: proto.Int32(5), Minor: proto.Int32(29), Patch: proto.Int32(3),
		},
	}
	if parameter != "" {
		req.Parameter = proto.String(parameter)
	}
	return req
}
