package common

import (
	"fmt"
	"strings"
)

// PluginName is the protoc plugin binary name.
const PluginName = "protoc-gen-tsmeta"

// FileHeader returns the banner written at the top of a generated file.
func FileHeader(pluginVersion, compilerVersion, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by %s. DO NOT EDIT.\n", PluginName)
	b.WriteString("// versions:\n")
	fmt.Fprintf(&b, "//   %s v%s\n", PluginName, pluginVersion)
	fmt.Fprintf(&b, "//   protoc %s\n", compilerVersion)
	fmt.Fprintf(&b, "// source: %s\n", source)
	b.WriteString("\n/* eslint-disable */\n")
	return b.String()
}
