package tsgen

import (
	"path"
	"slices"
	"strconv"
	"strings"
)

// File is one generated TypeScript module.
type File struct {
	// Module is the file's path relative to the output root, without extension.
	Module string
	// Header is written verbatim before the imports.
	Header string
	Chunks []Code
}

// Render resolves imports and returns the file's source text.
func (f File) Render() string {
	defs := map[string]bool{}
	var imports []Import
	seen := map[Import]bool{}
	for _, c := range f.Chunks {
		c.walk(func(p any) {
			switch v := p.(type) {
			case Def:
				defs[string(v)] = true
			case Import:
				if !seen[v] {
					seen[v] = true
					imports = append(imports, v)
				}
			}
		})
	}

	names := assignNames(imports, defs)

	var b strings.Builder
	if f.Header != "" {
		b.WriteString(strings.TrimRight(f.Header, "\n"))
		b.WriteString("\n")
	}
	if len(imports) > 0 {
		if f.Header != "" {
			b.WriteString("\n")
		}
		f.writeImports(&b, imports, names)
	}
	for i, c := range f.Chunks {
		if i > 0 || b.Len() > 0 {
			b.WriteString("\n")
		}
		var cb strings.Builder
		c.render(&cb, names)
		b.WriteString(strings.Trim(cb.String(), "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// assignNames gives every import a local name. The first import of a symbol
// keeps it unless the file defines that symbol; later ones get 1, 2, ...
func assignNames(imports []Import, defs map[string]bool) map[Import]string {
	names := make(map[Import]string, len(imports))
	taken := make(map[string]bool, len(defs)+len(imports))
	for d := range defs {
		taken[d] = true
	}
	for _, imp := range imports {
		name := imp.Symbol
		for n := 1; taken[name]; n++ {
			name = imp.Symbol + strconv.Itoa(n)
		}
		taken[name] = true
		names[imp] = name
	}
	return names
}

func (f File) writeImports(b *strings.Builder, imports []Import, names map[Import]string) {
	byModule := map[string][]Import{}
	for _, imp := range imports {
		byModule[imp.Module] = append(byModule[imp.Module], imp)
	}
	modules := make([]string, 0, len(byModule))
	for m := range byModule {
		modules = append(modules, m)
	}
	slices.Sort(modules)

	for _, m := range modules {
		group := byModule[m]
		slices.SortFunc(group, func(a, b Import) int { return strings.Compare(a.Symbol, b.Symbol) })
		specs := make([]string, 0, len(group))
		for _, imp := range group {
			if name := names[imp]; name != imp.Symbol {
				specs = append(specs, imp.Symbol+" as "+name)
			} else {
				specs = append(specs, imp.Symbol)
			}
		}
		b.WriteString("import { ")
		b.WriteString(strings.Join(specs, ", "))
		b.WriteString(" } from ")
		b.WriteString(strconv.Quote(RelativeModule(f.Module, m)))
		b.WriteString(";\n")
	}
}

// RelativeModule rewrites a root-relative module ("./x/y") as seen from the
// module from. Package names are returned unchanged.
func RelativeModule(from, module string) string {
	if !strings.HasPrefix(module, "./") {
		return module
	}
	target := strings.TrimPrefix(module, "./")
	fromDir := path.Dir(from)
	if fromDir == "." || fromDir == "" {
		return "./" + target
	}

	fromParts := strings.Split(fromDir, "/")
	toParts := strings.Split(target, "/")
	common := 0
	for common < len(fromParts) && common < len(toParts)-1 && fromParts[common] == toParts[common] {
		common++
	}

	var rel []string
	for range len(fromParts) - common {
		rel = append(rel, "..")
	}
	rel = append(rel, toParts[common:]...)
	if rel[0] != ".." {
		return "./" + strings.Join(rel, "/")
	}
	return strings.Join(rel, "/")
}
