package common

import "strings"

// ProtoExt is the extension of schema source files.
const ProtoExt = ".proto"

// TypeScript reserved words and built-in type names that cannot be used as
// a generated type name.
var tsReservedTypeNames = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "false": true, "finally": true, "for": true, "function": true,
	"if": true, "import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true, "with": true,
	"as": true, "implements": true, "interface": true, "let": true, "package": true, "private": true,
	"protected": true, "public": true, "static": true, "yield": true, "any": true, "boolean": true,
	"constructor": true, "declare": true, "get": true, "module": true, "require": true, "number": true,
	"set": true, "string": true, "symbol": true, "type": true, "from": true, "of": true,
	"object": true, "Uint8Array": true, "array": true, "Array": true, "String": true,
	"Number": true, "Boolean": true, "bigint": true, "BigInt": true, "Date": true, "Function": true,
}

// EscapeTypeName appends "$" to names that are reserved in TypeScript.
func EscapeTypeName(name string) string {
	if tsReservedTypeNames[name] {
		return name + "$"
	}
	return name
}

// ModuleName strips the schema extension: "b/c.proto" -> "b/c".
func ModuleName(protoPath string) string {
	return strings.TrimSuffix(protoPath, ProtoExt)
}

// OutputModule is the module generated for protoPath: "b/c.proto" with
// suffix ".meta" -> "b/c.meta".
func OutputModule(protoPath, suffix string) string {
	return ModuleName(protoPath) + suffix
}

// OutputFileName returns the TypeScript file generated for protoPath.
func OutputFileName(protoPath, suffix string) string {
	return OutputModule(protoPath, suffix) + ".ts"
}
