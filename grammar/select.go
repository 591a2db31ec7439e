package grammar

// computeEmissionOrder is pass §4.10. A production can be emitted once
// its own direct supertype (SubtypeOf), if any, has already been
// emitted — every direct supertype of P appears before P, per §8's
// testable emit-order property. Since IsInstance is only ever set on
// immediate subtypes of "instance" (§4.3), and SubtypeOf for those is
// always "instance" itself, this single rule also covers §4.10's
// separately-stated "instance must be emitted first" clause. The order
// is found by repeatedly scanning for productions whose dependency is
// already placed, stopping when a scan makes no progress; if that
// leaves productions unplaced, the supertype graph has a cycle.
func (b *Builder) computeEmissionOrder() error {
	var candidates []*Production
	for _, p := range b.model.productions {
		if p.isEmittable() {
			candidates = append(candidates, p)
		}
	}

	deps := make(map[productionID][]productionID, len(candidates))
	for _, p := range candidates {
		deps[p.ID] = b.emissionDeps(p)
	}

	printed := map[productionID]bool{}
	var order []productionID
	for {
		progress := false
		for _, p := range candidates {
			if printed[p.ID] {
				continue
			}
			if allPrinted(deps[p.ID], printed) {
				printed[p.ID] = true
				order = append(order, p.ID)
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	if len(order) != len(candidates) {
		for _, p := range candidates {
			if !printed[p.ID] {
				return b.errAt(semErrEmissionCycle, p.Pos, p.Name)
			}
		}
	}

	b.model.EmissionOrder = order
	return nil
}

// emissionDeps is just P's own direct supertype, if it has one and
// that supertype is itself part of the emittable set. A production
// with no SubtypeOf (the lattice root, or any non-subtype production)
// has no dependency and can be emitted in the first pass.
func (b *Builder) emissionDeps(p *Production) []productionID {
	if p.SubtypeOf == 0 {
		return nil
	}
	sup := b.model.production(p.SubtypeOf)
	if !sup.isEmittable() {
		return nil
	}
	return []productionID{p.SubtypeOf}
}

func allPrinted(deps []productionID, printed map[productionID]bool) bool {
	for _, d := range deps {
		if !printed[d] {
			return false
		}
	}
	return true
}

// populateClassNames is the §4.11 tail: every emittable production
// becomes a class name in the NameTable, in emission order.
func (b *Builder) populateClassNames() error {
	for _, id := range b.model.EmissionOrder {
		p := b.model.production(id)
		if err := b.model.Names.RecordClass(p.Name); err != nil {
			return b.errAt(err.(*SemanticError), p.Pos, p.Name)
		}
	}
	for _, p := range b.model.productions {
		for _, def := range p.Defs {
			for _, e := range def.Expressions {
				if e.Kind == ExpressionKindTerminal {
					if err := b.model.Names.RecordTerminal(e.Text); err != nil {
						return b.errAt(err.(*SemanticError), e.Pos, e.Text)
					}
				}
			}
		}
	}
	return nil
}
