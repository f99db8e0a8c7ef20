package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

// LoadDescriptorSet reads a FileDescriptorSet written by
// `protoc --descriptor_set_out`. Files ending in .json are read as protojson.
func LoadDescriptorSet(path string) (*descriptorpb.FileDescriptorSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor set: %w", err)
	}

	set := &descriptorpb.FileDescriptorSet{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = protojson.Unmarshal(data, set)
	} else {
		err = proto.Unmarshal(data, set)
	}
	if err != nil {
		return nil, fmt.Errorf("decode descriptor set %s: %w", path, err)
	}
	return set, nil
}

// RequestFromSet builds the request protoc would send for the given files.
// No files selects every file of the set.
func RequestFromSet(set *descriptorpb.FileDescriptorSet, files []string, parameter string) (*pluginpb.CodeGeneratorRequest, error) {
	known := make(map[string]bool, len(set.GetFile()))
	for _, fd := range set.GetFile() {
		known[fd.GetName()] = true
	}

	if len(files) == 0 {
		for _, fd := range set.GetFile() {
			files = append(files, fd.GetName())
		}
	}
	for _, f := range files {
		if !known[f] {
			return nil, fmt.Errorf("file %q is not part of the descriptor set", f)
		}
	}

	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: files,
		ProtoFile:      set.GetFile(),
	}
	if parameter != "" {
		req.Parameter = proto.String(parameter)
	}
	return req, nil
}

// ReadRequest decodes a CodeGeneratorRequest as sent by protoc.
func ReadRequest(data []byte) (*pluginpb.CodeGeneratorRequest, error) {
	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}
	return req, nil
}
