package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Sanitize returns a copy of fd whose source info keeps only locations with
// a leading or trailing comment. Invalid UTF-8 in the kept comments is
// replaced with U+FFFD. fd is not modified.
func Sanitize(fd *descriptorpb.FileDescriptorProto) *descriptorpb.FileDescriptorProto {
	out := proto.Clone(fd).(*descriptorpb.FileDescriptorProto)

	kept := []*descriptorpb.SourceCodeInfo_Location{}
	for _, loc := range out.GetSourceCodeInfo().GetLocation() {
		if loc.GetLeadingComments() != "" || loc.GetTrailingComments() != "" {
			validComments(loc)
			kept = append(kept, loc)
		}
	}
	out.SourceCodeInfo = &descriptorpb.SourceCodeInfo{Location: kept}
	return out
}

// validComments fixes comments protoc copied verbatim from a source file in
// another encoding; protojson refuses invalid UTF-8.
func validComments(loc *descriptorpb.SourceCodeInfo_Location) {
	if loc.LeadingComments != nil {
		loc.LeadingComments = proto.String(strings.ToValidUTF8(*loc.LeadingComments, "\uFFFD"))
	}
	if loc.TrailingComments != nil {
		loc.TrailingComments = proto.String(strings.ToValidUTF8(*loc.TrailingComments, "\uFFFD"))
	}
	for i, c := range loc.LeadingDetachedComments {
		loc.LeadingDetachedComments[i] = strings.ToValidUTF8(c, "\uFFFD")
	}
}

var descriptorJSON = protojson.MarshalOptions{
	UseEnumNumbers: true,
}

// Object renders the sanitized descriptor as indented JSON with enum values
// as their numbers.
func Object(fd *descriptorpb.FileDescriptorProto) ([]byte, error) {
	raw, err := descriptorJSON.Marshal(Sanitize(fd))
	if err != nil {
		return nil, fmt.Errorf("marshal file descriptor %s: %w", fd.GetName(), err)
	}
	// protojson output is deliberately unstable in whitespace.
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("format file descriptor %s: %w", fd.GetName(), err)
	}
	return buf.Bytes(), nil
}
