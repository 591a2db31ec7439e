package grammar

import (
	"github.com/nihei9/sebnf/ast"
	serr "github.com/nihei9/sebnf/error"
)

// bindProductions is pass §4.1. The special "c" comma alias is
// validated and registered first (so the shared comma Expression it
// produces exists before any other production's right-hand side needs
// it), then every other production is registered, then every
// NonTerminal expression's Production handle is resolved. Terminal-kind
// expressions are lexical and are expected to bind to nothing; an
// unresolved NonTerminal is a fatal error.
//
// Per spec.md §3, the "c" production itself is never retained in the
// production list: only the synthetic "C" keyword and the shared
// Model.CommaExpr singleton survive it.
func (b *Builder) bindProductions() error {
	var errs serr.SpecErrors

	var commaDef *ast.Production
	var others []*ast.Production
	for _, ap := range b.file.Productions {
		if ap.Name == "c" {
			commaDef = ap
			continue
		}
		others = append(others, ap)
	}

	if commaDef != nil {
		if err := b.bindCommaProduction(commaDef); err != nil {
			errs = append(errs, err.(*serr.SpecError))
		}
	}

	for _, ap := range others {
		if _, dup := b.model.lookup(ap.Name); dup {
			errs = append(errs, b.errAt(semErrDuplicateProduction, ap.Pos, ap.Name))
			continue
		}
		b.newProduction(ap)
	}

	for _, ap := range others {
		p, ok := b.model.lookup(ap.Name)
		if !ok {
			continue
		}
		for _, def := range p.Defs {
			for _, e := range def.Expressions {
				if err := b.resolveExpression(e); err != nil {
					errs = append(errs, err.(*serr.SpecError))
				}
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (b *Builder) newProduction(ap *ast.Production) *Production {
	p := b.model.addProduction(ap.Name, ap.Pos)
	for _, ad := range ap.Defs {
		def := &Definition{Pos: ad.Pos}
		for _, ae := range ad.Elements {
			def.Expressions = append(def.Expressions, b.newExpression(ae))
		}
		p.Defs = append(p.Defs, def)
	}
	p.IsList = classifyList(p)
	return p
}

func (b *Builder) newExpression(ae *ast.Element) *Expression {
	if ae.Kind == ast.ElementKindComma {
		if b.commaExpr != nil {
			return b.commaExpr
		}
		// No "c" production was defined. Synthesize a placeholder that
		// resolveExpression will reject with semErrCommaNotDefined.
		return &Expression{Kind: ExpressionKindNonTerminal, Text: "c", Pos: ae.Pos}
	}

	e := &Expression{Text: ae.Text, Pos: ae.Pos}
	switch ae.Kind {
	case ast.ElementKindKeyword:
		e.Kind = ExpressionKindKeyword
	case ast.ElementKindNonTerminal:
		e.Kind = ExpressionKindNonTerminal
	case ast.ElementKindTerminal:
		e.Kind = ExpressionKindTerminal
	case ast.ElementKindOneChar:
		e.Kind = ExpressionKindOneChar
	case ast.ElementKindTwoChar:
		e.Kind = ExpressionKindTwoChar
	case ast.ElementKindTerminalString:
		e.Kind = ExpressionKindTerminalString
	}
	return e
}

// bindCommaProduction validates the "c" production's shape and builds
// the shared comma Expression singleton every other production's
// `c`-alias elements are replaced with (see newExpression). The "c"
// production itself is never added to Model.productions.
func (b *Builder) bindCommaProduction(ap *ast.Production) error {
	if len(ap.Defs) != 1 || len(ap.Defs[0].Elements) != 1 {
		return b.errAt(semErrMalformedCommaProd, ap.Pos, "")
	}
	el := ap.Defs[0].Elements[0]
	if el.Kind != ast.ElementKindOneChar || el.Text != "," {
		return b.errAt(semErrMalformedCommaProd, ap.Pos, "")
	}

	b.commaExpr = &Expression{Kind: ExpressionKindOneChar, Text: ",", Pos: el.Pos}
	b.model.CommaExpr = b.commaExpr

	if err := b.model.Names.RecordKeyword("C"); err != nil {
		return b.errAt(err.(*SemanticError), ap.Pos, "C")
	}
	return nil
}

func (b *Builder) resolveExpression(e *Expression) error {
	if e.Kind != ExpressionKindNonTerminal {
		return nil
	}
	p, ok := b.model.lookup(e.Text)
	if !ok {
		if e.Text == "c" {
			return b.errAt(semErrCommaNotDefined, e.Pos, "")
		}
		return b.errAt(semErrUndefinedNonTerminal, e.Pos, e.Text)
	}
	e.Production = p.ID
	return nil
}

func (b *Builder) errAt(cause error, pos ast.Position, detail string) *serr.SpecError {
	return &serr.SpecError{
		Cause:    cause,
		FilePath: b.filePath,
		Detail:   detail,
		Row:      pos.Row,
		Col:      pos.Col,
	}
}
