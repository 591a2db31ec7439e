package grammar

import (
	"strings"

	"github.com/nihei9/sebnf/ast"
)

// readOwnAttributes is pass §4.6. It copies each parsed AttributeLine
// onto the production it names. A line's optional second `:` gives an
// explicit FullAttributeNames override, which propagateAttributes
// leaves untouched.
func (b *Builder) readOwnAttributes(lines []*ast.AttributeLine) error {
	for _, l := range lines {
		p, ok := b.model.lookup(l.ProductionName)
		if !ok {
			return b.errAt(semErrAttUnknownProduction, l.Pos, l.ProductionName)
		}
		p.OwnAttributeNames = append(p.OwnAttributeNames, l.OwnNames...)
		if l.FullNames != nil {
			p.FullAttributeNames = append(p.FullAttributeNames, l.FullNames...)
		}
	}
	return nil
}

// propagateAttributes is pass §4.7. A production's FullAttributeNames
// is the concatenation, in lattice order, of every ancestor's own
// attribute names (farthest ancestor first) followed by the
// production's own attribute names last — e.g. for `plane` subtyping
// `geometricRepresentationItem` (own=[name]) with plane's own=[position],
// FullAttributeNames(plane)=[name, position] (§8 scenario 4).
// Productions whose attribute line gave an explicit override
// (FullAttributeNames already non-nil) are left alone.
func (b *Builder) propagateAttributes() error {
	for _, p := range b.model.productions {
		if p.FullAttributeNames != nil {
			continue
		}
		var full []string
		for i := len(p.Ancestors) - 1; i >= 0; i-- {
			a := b.model.production(p.Ancestors[i])
			full = append(full, a.OwnAttributeNames...)
		}
		full = append(full, p.OwnAttributeNames...)
		p.FullAttributeNames = full
	}
	return nil
}

// alignOwnExpressions is pass §4.8. For a production P with own
// attributes, the source production S is P itself if IsInstance(P),
// else BeInstance(P) if set, else P again (§4.8's "else S = P"
// fallback). X is S's first definition's content-bearing (NonTerminal
// or Terminal) expressions, A is FullAttributeNames(S); |X| and |A|
// walk together. Because OwnAttributeNames(P) is a suffix of A (own
// names are appended last by propagateAttributes) rather than
// necessarily its prefix, the first own name is located in A before
// the parallel walk begins.
func (b *Builder) alignOwnExpressions() error {
	for _, p := range b.model.productions {
		if len(p.OwnAttributeNames) == 0 {
			continue
		}

		var src *Production
		switch {
		case p.IsInstance:
			src = p
		case p.BeInstance != 0:
			src = b.model.production(p.BeInstance)
		default:
			src = p
		}
		if len(src.Defs) == 0 {
			return b.errAt(semErrAttNotEnoughExps, p.Pos, p.Name)
		}

		var content []*Expression
		for _, e := range src.Defs[0].Expressions {
			if e.Kind == ExpressionKindNonTerminal || e.Kind == ExpressionKindTerminal {
				content = append(content, e)
			}
		}
		full := src.FullAttributeNames

		offset := -1
		want := p.OwnAttributeNames[0]
		for i := 0; i < len(full) && i < len(content); i++ {
			if attributeNameMatches(want, full[i]) {
				offset = i
				break
			}
		}
		if offset < 0 {
			return b.errAt(semErrAttNotEnoughNames, p.Pos, p.Name)
		}

		p.OwnExpressions = make([]*Expression, len(p.OwnAttributeNames))
		for i, name := range p.OwnAttributeNames {
			j := offset + i
			if j >= len(content) || j >= len(full) {
				return b.errAt(semErrAttNotEnoughExps, p.Pos, p.Name)
			}
			if !attributeNameMatches(name, full[j]) {
				return b.errAt(semErrAttNameMismatch, p.Pos, name+" / "+full[j])
			}
			p.OwnExpressions[i] = content[j]
		}
	}
	return nil
}

func attributeNameMatches(attName, exprText string) bool {
	return strings.EqualFold(attName, exprText) || strings.EqualFold(attName, lowerFirst(exprText))
}
