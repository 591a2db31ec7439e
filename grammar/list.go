package grammar

// classifyList is pass §4.2, run at construction time (before binding)
// since it only needs a production's own shape. A production is a list
// if it has exactly two definitions: one base case, and one that
// extends the list by recursing on the production's own name as its
// first expression, optionally separated by a comma.
func classifyList(p *Production) ListKind {
	if len(p.Defs) != 2 {
		return ListKindNone
	}

	base, rec := p.Defs[0], p.Defs[1]
	if isSelfRecursive(p.Name, base) {
		base, rec = rec, base
	}
	if !isSelfRecursive(p.Name, rec) || isSelfRecursive(p.Name, base) {
		return ListKindNone
	}
	if len(base.Expressions) != 1 {
		return ListKindNone
	}

	switch len(rec.Expressions) {
	case 2:
		return ListKindPlain
	case 3:
		mid := rec.Expressions[1]
		if isCommaExpression(mid) {
			return ListKindCommaSeparated
		}
		return ListKindNone
	default:
		return ListKindNone
	}
}

func isSelfRecursive(name string, def *Definition) bool {
	if len(def.Expressions) == 0 {
		return false
	}
	first := def.Expressions[0]
	return first.Kind == ExpressionKindNonTerminal && first.Text == name
}

// isCommaExpression matches both a literal ',' and the shared comma
// Expression singleton every `c`-alias occurrence is replaced with
// (see Builder.newExpression): both carry Kind OneChar, Text ",".
func isCommaExpression(e *Expression) bool {
	return e.Kind == ExpressionKindOneChar && e.Text == ","
}
