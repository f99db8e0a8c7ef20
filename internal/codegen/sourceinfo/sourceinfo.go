package sourceinfo

import (
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Field numbers of descriptor.proto used to build source paths.
const (
	FileMessageType   int32 = 4
	FileEnumType      int32 = 5
	FileService       int32 = 6
	MessageNestedType int32 = 3
	MessageEnumType   int32 = 4
)

// Comments holds the comments attached to one source path.
type Comments struct {
	Leading  string
	Trailing string
}

// Summary returns the first non-blank comment line, leading comment first.
func (c Comments) Summary() string {
	for _, text := range []string{c.Leading, c.Trailing} {
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				return line
			}
		}
	}
	return ""
}

// Info is a view of a file's source locations rooted at some path.
// The zero value has no locations.
type Info struct {
	locations map[string]*descriptorpb.SourceCodeInfo_Location
	path      []int32
}

// FromFile indexes the source locations of fd. A file without source info
// yields an empty Info.
func FromFile(fd *descriptorpb.FileDescriptorProto) Info {
	locs := fd.GetSourceCodeInfo().GetLocation()
	index := make(map[string]*descriptorpb.SourceCodeInfo_Location, len(locs))
	for _, loc := range locs {
		k := key(loc.GetPath())
		// protoc may emit several spans for one path; the first carries the comments.
		if _, ok := index[k]; !ok {
			index[k] = loc
		}
	}
	return Info{locations: index}
}

// Open descends into child index of the given repeated field.
func (i Info) Open(field int32, index int) Info {
	path := make([]int32, len(i.path), len(i.path)+2)
	copy(path, i.path)
	return Info{locations: i.locations, path: append(path, field, int32(index))}
}

// Path returns the descriptor path of this view.
func (i Info) Path() []int32 {
	return append([]int32(nil), i.path...)
}

// Comments returns the comments of the location at this view's path.
func (i Info) Comments() Comments {
	loc, ok := i.locations[key(i.path)]
	if !ok {
		return Comments{}
	}
	return Comments{
		Leading:  trimComment(loc.GetLeadingComments()),
		Trailing: trimComment(loc.GetTrailingComments()),
	}
}

// trimComment strips the single space protoc keeps after "//" on every line.
func trimComment(s string) string {
	s = strings.TrimRight(s, " \t\n")
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		lines[i] = strings.TrimPrefix(line, " ")
	}
	return strings.Join(lines, "\n")
}

func key(path []int32) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatInt(int64(p), 10))
	}
	return b.String()
}
