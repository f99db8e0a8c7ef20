package writer

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
	"google.golang.org/protobuf/types/pluginpb"
)

// ErrInsertionPointNotFound is returned when a target file lacks the marker.
var ErrInsertionPointNotFound = errors.New("insertion point not found")

// Result counts what WriteFiles did.
type Result struct {
	Written   int
	Unchanged int
}

// WriteFiles applies generated files below outputDir the way protoc does.
// Files whose content is already on disk are left untouched.
func WriteFiles(logger *slog.Logger, outputDir string, files []*pluginpb.CodeGeneratorResponse_File) (Result, error) {
	var res Result
	for _, f := range files {
		name := filepath.FromSlash(f.GetName())
		if !filepath.IsLocal(name) {
			return res, fmt.Errorf("output path %q escapes the output directory", f.GetName())
		}
		path := filepath.Join(outputDir, name)

		content := []byte(f.GetContent())
		if ip := f.GetInsertionPoint(); ip != "" {
			existing, err := os.ReadFile(path)
			if err != nil {
				return res, fmt.Errorf("read insertion target %s: %w", path, err)
			}
			content, err = Insert(existing, ip, f.GetContent())
			if err != nil {
				return res, fmt.Errorf("%s: %w", path, err)
			}
		}

		if unchanged(path, content) {
			logger.Debug("Output unchanged", "file", path)
			res.Unchanged++
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return res, fmt.Errorf("create directory for %s: %w", path, err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return res, fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("Wrote file", "file", path, "bytes", len(content))
		res.Written++
	}
	return res, nil
}

// Insert splices content into existing immediately above the line holding
// @@protoc_insertion_point(name), indented like that line.
func Insert(existing []byte, name, content string) ([]byte, error) {
	marker := []byte("@@protoc_insertion_point(" + name + ")")
	pos := bytes.Index(existing, marker)
	if pos < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInsertionPointNotFound, name)
	}

	lineStart := bytes.LastIndexByte(existing[:pos], '\n') + 1
	line := existing[lineStart:pos]
	indentation := line[:len(line)-len(bytes.TrimLeft(line, " \t"))]

	var b bytes.Buffer
	b.Write(existing[:lineStart])
	for _, l := range strings.SplitAfter(content, "\n") {
		if l == "" {
			continue
		}
		if l != "\n" {
			b.Write(indentation)
		}
		b.WriteString(l)
	}
	if !strings.HasSuffix(content, "\n") && content != "" {
		b.WriteByte('\n')
	}
	b.Write(existing[lineStart:])
	return b.Bytes(), nil
}

func unchanged(path string, content []byte) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return blake2b.Sum256(existing) == blake2b.Sum256(content)
}
