package grammar

import (
	"github.com/nihei9/sebnf/ast"
	serr "github.com/nihei9/sebnf/error"
)

// Builder runs every analysis pass over a parsed source file and
// produces a Model. A Builder is single-use and holds no package-level
// mutable state, unlike the generator this design is adapted from.
type Builder struct {
	file     *ast.File
	filePath string
	model    *Model

	// commaExpr is the shared comma Expression singleton, set once by
	// bindCommaProduction and reused by newExpression for every other
	// occurrence of the `c` alias.
	commaExpr *Expression
}

// NewBuilder prepares a Builder over an already-parsed file. filePath
// is used only to annotate diagnostics with a source line.
func NewBuilder(file *ast.File, filePath string) *Builder {
	return &Builder{
		file:     file,
		filePath: filePath,
		model:    newModel(),
	}
}

// Build runs the full pipeline described in the component design and
// returns the fully annotated Model, or the errors of the first pass
// that fails. Binding reports every error it finds; each later pass
// stops at its first error. Passes after binding assume binding
// succeeded completely, so Build stops at the first pass that reports
// any error.
func (b *Builder) Build() (*Model, error) {
	if err := b.bindProductions(); err != nil {
		return nil, err
	}
	if err := b.refineSpelling(); err != nil {
		return nil, asSpecErrors(err)
	}
	if err := b.readOwnAttributes(b.file.AttributeLines); err != nil {
		return nil, asSpecErrors(err)
	}
	if err := b.classifySupertypes(); err != nil {
		return nil, asSpecErrors(err)
	}
	if err := b.computeAncestors(); err != nil {
		return nil, asSpecErrors(err)
	}
	if err := b.computeBeInstance(); err != nil {
		return nil, asSpecErrors(err)
	}
	if err := b.classifyOptionals(); err != nil {
		return nil, asSpecErrors(err)
	}
	if err := b.propagateAttributes(); err != nil {
		return nil, asSpecErrors(err)
	}
	if err := b.alignOwnExpressions(); err != nil {
		return nil, asSpecErrors(err)
	}
	if err := b.computeEmissionOrder(); err != nil {
		return nil, asSpecErrors(err)
	}
	if err := b.populateClassNames(); err != nil {
		return nil, asSpecErrors(err)
	}

	return b.model, nil
}

func asSpecErrors(err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*serr.SpecError); ok {
		return serr.SpecErrors{se}
	}
	return err
}
