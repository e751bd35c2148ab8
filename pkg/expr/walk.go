package expr

import "slices"

// Walk visits e and its descendants depth-first, parents before children.
// If fn returns false the children of that node are skipped. Empty slots are
// not visited. A node reached again through its own descendants is not
// visited a second time on that path, so Walk terminates on cyclic trees.
func Walk(e Expr, fn func(Expr) bool) {
	if e.arena == nil {
		return
	}
	e.arena.walk(e.id, make(map[id]struct{}), fn)
}

func (a *Arena) walk(i id, path map[id]struct{}, fn func(Expr) bool) {
	if i == noID {
		return
	}
	if _, seen := path[i]; seen {
		return
	}
	if !fn(a.handle(i)) {
		return
	}
	path[i] = struct{}{}
	for _, c := range a.nodes[i].children {
		a.walk(c, path, fn)
	}
	delete(path, i)
}

// Clone returns a deep copy of e in the same arena. The copy shares no node
// with e and has no parent, unless e lies on a cycle: a cycle is copied as a
// cycle between the new nodes, so the copy renders like the original.
func (e Expr) Clone() Expr {
	if e.arena == nil {
		return Expr{}
	}
	return e.arena.handle(e.arena.clone(e.id, noID, make(map[id]id)))
}

// clone copies src under parent. copies maps every source node reached so
// far to its copy.
func (a *Arena) clone(src, parent id, copies map[id]id) id {
	if src == noID {
		return noID
	}
	if dst, seen := copies[src]; seen {
		a.logger.Warn("cycle detected while cloning",
			"op", "Clone", "node", a.describe(src))
		a.nodes[dst].parent = parent
		return dst
	}

	n := a.nodes[src]
	kids := slices.Clone(n.children)
	n.children = nil
	n.value = n.value.Clone()
	dst := a.add(n)
	a.nodes[dst].parent = parent
	copies[src] = dst
	for i, c := range kids {
		kids[i] = a.clone(c, dst, copies)
	}
	a.nodes[dst].children = kids
	return dst
}
