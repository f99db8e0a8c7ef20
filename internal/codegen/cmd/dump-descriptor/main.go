// Command dump-descriptor prints the sanitized descriptor object that would
// be embedded for each file of a descriptor set.
//
//	go run ./internal/codegen/cmd/dump-descriptor set.pb [file.proto ...]
package main

import (
	"fmt"
	"os"

	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/scanner"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/schema"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: dump-descriptor <descriptor-set> [file.proto ...]")
		os.Exit(2)
	}

	set, err := scanner.LoadDescriptorSet(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load descriptor set: %v\n", err)
		os.Exit(1)
	}

	want := map[string]bool{}
	for _, name := range os.Args[2:] {
		want[name] = true
	}

	for _, fd := range set.GetFile() {
		if len(want) > 0 && !want[fd.GetName()] {
			continue
		}
		output, err := schema.Object(fd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to sanitize %s: %v\n", fd.GetName(), err)
			os.Exit(1)
		}
		fmt.Printf("// %s\n%s\n", fd.GetName(), output)
	}
}
