package grammar

import "strings"

// classifyOptionals is pass §4.5. A production with exactly two
// definitions, each exactly one Expression long, where one Expression
// is a NonTerminal (the "optional child" C) and the other is the
// one-character literal '$', is an optional parent P wrapping C. It
// must run after §4.3–§4.4 since the role assigned to P depends on
// IsInstance(C) and BeInstance(C):
//
//   - IsInstance(C): P is ParentOfInstanceOrSupertype, transfer name is
//     C's own name.
//   - else BeInstance(C) set: P is still ParentOfInstanceOrSupertype,
//     but the transfer name is read off the first instance production
//     that descends from C, per §4.5 clause 2.
//   - else: P is ParentOfOther, transfer name is C's own name.
func (b *Builder) classifyOptionals() error {
	for _, p := range b.model.productions {
		if len(p.Defs) != 2 {
			continue
		}
		childExpr, ok := splitOptionalDefs(p.Defs)
		if !ok {
			continue
		}
		child := b.model.production(childExpr.Production)
		if child == nil {
			continue
		}

		child.OptProd = p.ID
		child.OptionalRole = OptionalRoleChild
		p.OptProd = child.ID

		switch {
		case child.IsInstance:
			p.OptionalRole = OptionalRoleParentOfInstanceOrSupertype
			p.TransferName = child.Name
		case child.BeInstance != 0:
			p.OptionalRole = OptionalRoleParentOfInstanceOrSupertype
			name, ok := b.findTransferName(child)
			if !ok {
				return b.errAt(semErrNoTransferName, p.Pos, p.Name)
			}
			p.TransferName = name
		default:
			p.OptionalRole = OptionalRoleParentOfOther
			p.TransferName = child.Name
		}
	}
	return nil
}

// splitOptionalDefs returns the NonTerminal expression naming the
// optional child, if exactly one of the two one-expression definitions
// is that NonTerminal and the other is the literal '$'.
func splitOptionalDefs(defs []*Definition) (child *Expression, ok bool) {
	if len(defs[0].Expressions) != 1 || len(defs[1].Expressions) != 1 {
		return nil, false
	}
	a, b := defs[0].Expressions[0], defs[1].Expressions[0]
	switch {
	case a.Kind == ExpressionKindNonTerminal && isDollarSign(b):
		return a, true
	case b.Kind == ExpressionKindNonTerminal && isDollarSign(a):
		return b, true
	default:
		return nil, false
	}
}

func isDollarSign(e *Expression) bool {
	return e.Kind == ExpressionKindOneChar && e.Text == "$"
}

// findTransferName implements §4.5 clause 2: C isn't itself an
// instance, but BeInstance(C) says some instance descends from it. The
// transfer name is read off the first Production D (in declaration
// order) with C ∈ Ancestors(D) and IsInstance(D).
func (b *Builder) findTransferName(c *Production) (string, bool) {
	for _, d := range b.model.productions {
		if !d.IsInstance {
			continue
		}
		for _, aid := range d.Ancestors {
			if aid == c.ID {
				return d.Name, true
			}
		}
	}
	return "", false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
