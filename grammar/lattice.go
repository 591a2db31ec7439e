package grammar

// computeAncestors is pass §4.4a. Ancestors walks the SubtypeOf chain,
// nearest ancestor first, detecting cycles rather than looping forever.
// The root production named "instance" is never recorded as an ancestor.
func (b *Builder) computeAncestors() error {
	for _, p := range b.model.productions {
		visited := map[productionID]bool{p.ID: true}
		cur := p.SubtypeOf
		var chain []productionID
		for cur != 0 {
			if visited[cur] {
				return b.errAt(semErrAmbiguousSupertype, p.Pos, p.Name)
			}
			visited[cur] = true
			a := b.model.production(cur)
			if a.Name != "instance" {
				chain = append(chain, cur)
			}
			cur = a.SubtypeOf
		}
		p.Ancestors = chain
	}
	return nil
}

// computeBeInstance is pass §4.4b. It runs forward from every instance
// production Q, stamping BeInstance(P) := Q on each P ∈ Ancestors(Q)
// whose BeInstance is still unset — first instance descendant wins. An
// instance production never receives a BeInstance value of its own.
func (b *Builder) computeBeInstance() error {
	for _, q := range b.model.productions {
		if !q.IsInstance {
			continue
		}
		for _, aid := range q.Ancestors {
			a := b.model.production(aid)
			if a.BeInstance == 0 {
				a.BeInstance = q.ID
			}
		}
	}
	return nil
}
