// Package padsl implements the token-level reader and writer for the
// indentation-based text form IRBlock values serialize to (spec §6's
// external "text DSL"). SourceLayout calls this package to produce and
// consume the *.pa.yaml files that keep the source tree human-editable; the
// general-purpose expression grammar is explicitly out of scope (spec §1), so
// this package treats every expression as an opaque string.
package padsl

import (
	"fmt"
	"strings"

	"github.com/gopasrc/pasrc/internal/model"
)

// indentUnit is the number of spaces one nesting level adds. Not part of the
// format's contract with the rest of the pipeline (padsl only ever produces
// its own indentation), but kept as a named constant since Render and Parse
// must agree on it.
const indentUnit = 2

// Render writes block's textual form to a strings.Builder and returns it,
// following the shapes §6 names: `Name As Type[.Variant]:` headers,
// `Property = Expression` lines, nested child blocks, and function blocks.
func Render(block *model.IRBlock) string {
	var b strings.Builder
	renderBlock(&b, block, 0)
	return b.String()
}

func renderBlock(b *strings.Builder, block *model.IRBlock, depth int) {
	writeIndent(b, depth)
	b.WriteString(headerLine(block.Name))
	b.WriteString(":\n")

	for _, p := range block.Properties {
		writeIndent(b, depth+1)
		fmt.Fprintf(b, "%s = %s\n", p.Identifier, p.Expression)
	}
	for _, fn := range block.Functions {
		renderFunc(b, &fn, depth+1)
	}
	for _, child := range block.Children {
		renderBlock(b, child, depth+1)
	}
}

func renderFunc(b *strings.Builder, fn *model.FuncNode, depth int) {
	writeIndent(b, depth)
	b.WriteString(fn.Identifier)
	b.WriteString("(")
	for i, arg := range fn.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.Identifier)
		b.WriteString(" As ")
		b.WriteString(arg.Kind.TypeName)
	}
	b.WriteString("):\n")

	for _, m := range fn.Metadata {
		writeIndent(b, depth+1)
		fmt.Fprintf(b, "%s = %s\n", m.Identifier, m.DefaultExpression)
	}
}

func headerLine(name model.TypedName) string {
	typePart := name.Kind.TypeName
	if name.Kind.OptionalVariant != nil && *name.Kind.OptionalVariant != "" {
		typePart = typePart + "." + *name.Kind.OptionalVariant
	}
	return fmt.Sprintf("%s As %s", name.Identifier, typePart)
}

func writeIndent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat(" ", depth*indentUnit))
}
