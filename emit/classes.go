// Package emit projects an analyzed grammar.Model onto the three output
// files a backend code generator, parser generator, and lexer generator
// each expect. None of the three backends themselves are in scope; this
// package only writes what they consume.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/sebnf/grammar"
)

// ClassWriter writes a textual skeleton of the generated data-model
// classes: one base class per supertype and one class per other
// emitted production, carrying its FullAttributeNames. The real class
// generator backend is out of scope; this is the projection it would
// read.
type ClassWriter struct {
	Model *grammar.Model
}

// WriteClasses writes the header (.hh-style) declarations followed by
// the member (.cc-style) definitions, in emission order, so a direct
// supertype always precedes its subtypes.
func (w *ClassWriter) WriteClasses(hh, cc io.Writer) error {
	hw := bufio.NewWriter(hh)
	cw := bufio.NewWriter(cc)

	for _, id := range w.Model.EmissionOrder {
		p := w.Model.Production(id)
		w.writeClassDecl(hw, p)
		w.writeClassDefn(cw, p)
	}

	if err := hw.Flush(); err != nil {
		return err
	}
	return cw.Flush()
}

func (w *ClassWriter) writeClassDecl(out *bufio.Writer, p *grammar.Production) {
	if p.IsSupertype {
		fmt.Fprintf(out, "class %s {\n", p.Name)
		fmt.Fprintf(out, "public:\n")
		fmt.Fprintf(out, "    virtual ~%s() {}\n", p.Name)
		fmt.Fprintf(out, "};\n\n")
		return
	}

	fmt.Fprintf(out, "class %s", p.Name)
	if p.SubtypeOf != 0 {
		parent := w.Model.Production(p.SubtypeOf)
		fmt.Fprintf(out, " : public %s", parent.Name)
	}
	fmt.Fprintf(out, " {\n")
	fmt.Fprintf(out, "public:\n")
	for _, name := range p.FullAttributeNames {
		fmt.Fprintf(out, "    Expression %s;\n", name)
	}
	if p.OptionalRole == grammar.OptionalRoleChild && p.OptProd != 0 {
		parent := w.Model.Production(p.OptProd)
		fmt.Fprintf(out, "    // reached optionally via %s as '%s'\n", parent.Name, parent.TransferName)
	}
	fmt.Fprintf(out, "};\n\n")
}

func (w *ClassWriter) writeClassDefn(out *bufio.Writer, p *grammar.Production) {
	if p.IsSupertype {
		return
	}
	fmt.Fprintf(out, "// %s: %s\n", p.Name, strings.Join(p.FullAttributeNames, ", "))
}
