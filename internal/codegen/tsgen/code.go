// Package tsgen builds TypeScript source from fragments that carry their
// own imports, so that import statements can be resolved once per file.
package tsgen

import "strings"

// Import references Symbol exported by Module. Modules starting with "./"
// are relative to the output root; anything else is a package name.
type Import struct {
	Symbol string
	Module string
}

// Imp creates an Import.
func Imp(symbol, module string) Import {
	return Import{Symbol: symbol, Module: module}
}

// Def marks a symbol defined by the file itself. Imports of the same name
// are aliased.
type Def string

// Code is an ordered list of fragments: string, Import, Def or Code.
type Code struct {
	parts []any
}

// New creates a Code from parts. Unsupported part types are ignored.
func New(parts ...any) Code {
	c := Code{}
	return c.Append(parts...)
}

// Append returns c extended by parts.
func (c Code) Append(parts ...any) Code {
	out := Code{parts: make([]any, 0, len(c.parts)+len(parts))}
	out.parts = append(out.parts, c.parts...)
	for _, p := range parts {
		switch v := p.(type) {
		case string, Import, Def, Code:
			out.parts = append(out.parts, v)
		case []Code:
			for _, sub := range v {
				out.parts = append(out.parts, sub)
			}
		}
	}
	return out
}

// Join concatenates codes with sep between them.
func Join(codes []Code, sep string) Code {
	out := Code{}
	for i, c := range codes {
		if i > 0 {
			out = out.Append(sep)
		}
		out = out.Append(c)
	}
	return out
}

// String renders c with unresolved imports written as their bare symbol.
func (c Code) String() string {
	var b strings.Builder
	c.render(&b, nil)
	return b.String()
}

func (c Code) walk(fn func(any)) {
	for _, p := range c.parts {
		if sub, ok := p.(Code); ok {
			sub.walk(fn)
			continue
		}
		fn(p)
	}
}

func (c Code) render(b *strings.Builder, names map[Import]string) {
	c.walk(func(p any) {
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case Def:
			b.WriteString(string(v))
		case Import:
			if name, ok := names[v]; ok {
				b.WriteString(name)
			} else {
				b.WriteString(v.Symbol)
			}
		}
	})
}
