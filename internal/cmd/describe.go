package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/options"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/scanner"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/schema"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/sourceinfo"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/visit"
)

// Describe prints the reference table each file would get.
type Describe struct {
	Descriptors string          `arg:"" help:"FileDescriptorSet (.pb, or protojson .json)" type:"existingfile"`
	Files       []string        `name:"file" help:"Proto files to describe (default: every file in the set)"`
	NoColor     bool            `help:"Disable colored output (also disabled by a non-empty NO_COLOR)"`
	Options     options.Options `embed:""`
}

// Run is called by Kong when the describe command is executed.
func (d *Describe) Run(logger *slog.Logger) error {
	set, err := scanner.LoadDescriptorSet(d.Descriptors)
	if err != nil {
		return err
	}
	req, err := scanner.RequestFromSet(set, d.Files, "")
	if err != nil {
		return err
	}
	logger.Debug("Describing files", "count", len(req.GetFileToGenerate()))

	byName := map[string]*descriptorpb.FileDescriptorProto{}
	for _, fd := range set.GetFile() {
		byName[fd.GetName()] = fd
	}
	for _, name := range req.GetFileToGenerate() {
		if err := d.Print(os.Stdout, byName[name]); err != nil {
			return err
		}
	}
	return nil
}

// colorDisabled follows https://no-color.org: any non-empty NO_COLOR counts.
func (d *Describe) colorDisabled() bool {
	return d.NoColor || os.Getenv("NO_COLOR") != ""
}

// Print writes the declarations of fd with their proto names, reference
// keys and symbols. NAME and KEY differ when a name contains "_".
func (d *Describe) Print(w io.Writer, fd *descriptorpb.FileDescriptorProto) error {
	si := sourceinfo.FromFile(fd)
	refs := schema.BuildReferences(fd, si, d.Options)
	symbols := make(map[string]string, refs.Len())
	for _, ref := range refs.Entries() {
		symbols[ref.Key] = ref.Symbol
	}

	title := color.New(color.Bold, color.FgCyan)
	if d.colorDisabled() {
		title.DisableColor()
	}
	if _, err := title.Fprintf(w, "%s (package %q, %d imports)\n", fd.GetName(), fd.GetPackage(), len(fd.GetDependency())); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tKEY\tSYMBOL\tMEMBERS\tCOMMENT")
	row := func(decl visit.Decl) {
		key := schema.CanonicalName(fd.GetPackage(), decl.FullName)
		symbol, ok := symbols[key]
		if !ok {
			symbol = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			decl.Kind, protoFullName(fd.GetPackage(), decl.ProtoName), key, symbol,
			members(decl), decl.Source.Comments().Summary())
	}
	for decl := range visit.Declarations(fd, si) {
		row(decl)
	}
	for decl := range visit.Services(fd, si) {
		row(decl)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func protoFullName(pkg, name string) string {
	if pkg == "" {
		return "." + name
	}
	return "." + pkg + "." + name
}

// members counts fields, enum values or methods.
func members(decl visit.Decl) int {
	switch decl.Kind {
	case visit.Message:
		return len(decl.Message.GetField())
	case visit.Enum:
		return len(decl.Enum.GetValue())
	case visit.Service:
		return len(decl.Service.GetMethod())
	default:
		return 0
	}
}
