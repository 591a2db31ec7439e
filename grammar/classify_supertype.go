package grammar

// classifySupertypes is pass §4.3. A production is a supertype when
// every one of its definitions is exactly one NonTerminal expression
// naming a subtype, it has at least two definitions, and it isn't
// itself a list; distinctness of the subtypes is not checked. The root
// production named "instance" is special-cased: it is always a
// supertype root even if it has only one subtype, since it anchors the
// whole lattice, and its immediate subtypes are the only productions
// that ever get IsInstance set — no other production does.
func (b *Builder) classifySupertypes() error {
	for _, p := range b.model.productions {
		if p.IsList != ListKindNone {
			continue
		}
		if !everyDefIsSingleNonTerminal(p) {
			continue
		}
		if p.Name != "instance" && len(p.Defs) < 2 {
			continue
		}

		p.IsSupertype = true
		for _, def := range p.Defs {
			sub := b.model.production(def.Expressions[0].Production)
			if sub == nil {
				continue
			}
			if sub.SubtypeOf != 0 && sub.SubtypeOf != p.ID {
				return b.errAt(semErrAmbiguousSupertype, def.Pos, sub.Name)
			}
			sub.SubtypeOf = p.ID
			if p.Name == "instance" {
				sub.IsInstance = true
			}
		}
	}
	return nil
}

func everyDefIsSingleNonTerminal(p *Production) bool {
	for _, def := range p.Defs {
		if len(def.Expressions) != 1 {
			return false
		}
		if def.Expressions[0].Kind != ExpressionKindNonTerminal {
			return false
		}
	}
	return true
}
