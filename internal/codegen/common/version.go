package common

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/pluginpb"
)

// Version is set via ldflags at build time: -ldflags "-X github.com/Alia5/protoc-gen-tsmeta/internal/codegen/common.Version=x.y.z"
var Version = ""

// GetVersion returns the version string that was set at build time via ldflags.
// Returns "0.0.1-dev" if Version is empty (development builds only).
func GetVersion() (string, error) {
	if Version == "" {
		return "0.0.1-dev", nil
	}

	version := strings.TrimPrefix(Version, "v")
	baseVersion := strings.SplitN(version, "-", 2)[0]
	if !strings.Contains(baseVersion, ".") {
		return "", fmt.Errorf("invalid version format: %s (expected x.y.z)", Version)
	}

	return version, nil
}

// CompilerVersion formats the protoc version reported in a request, or
// "(unknown)" when protoc did not send one.
func CompilerVersion(v *pluginpb.Version) string {
	if v == nil {
		return "(unknown)"
	}
	s := fmt.Sprintf("v%d.%d.%d", v.GetMajor(), v.GetMinor(), v.GetPatch())
	if suffix := v.GetSuffix(); suffix != "" {
		s += "-" + strings.TrimPrefix(suffix, "-")
	}
	return s
}
