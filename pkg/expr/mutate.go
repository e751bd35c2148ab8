package expr

import (
	"errors"
	"slices"
)

// Errors returned by rejected mutations. The tree is unchanged when one of
// them is returned.
var (
	ErrSelfContainment = errors.New("expression cannot contain itself")
	ErrAlreadyMember   = errors.New("expression is already a member of this list")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNullExpression  = errors.New("operation on a null expression")
	ErrForeignArena    = errors.New("expression belongs to another arena")
	ErrNotArgumentList = errors.New("function arguments must be an n-ary expression")
)

// reject logs a rejected mutation on the arena logger and returns err.
func (a *Arena) reject(op string, target id, err error) error {
	a.logger.Warn("rejected expression mutation",
		"op", op, "node", a.describe(target), "error", err)
	return err
}

// detach removes child from its current parent. List parents drop the
// position; other parents keep an empty slot.
func (a *Arena) detach(child id) {
	p := a.nodes[child].parent
	if p == noID {
		return
	}
	pn := &a.nodes[p]
	if pn.class == ClassNArg {
		if i := slices.Index(pn.children, child); i >= 0 {
			pn.children = slices.Delete(pn.children, i, i+1)
		}
	} else {
		for i, c := range pn.children {
			if c == child {
				pn.children[i] = noID
			}
		}
	}
	a.nodes[child].parent = noID
}

// setSlot installs child at a fixed slot of parent. A null child empties the
// slot. A child owned elsewhere, including the sibling slot, is moved.
func (a *Arena) setSlot(op string, parent id, slot int, child Expr) error {
	if child.arena == nil {
		if old := a.nodes[parent].children[slot]; old != noID {
			a.nodes[old].parent = noID
			a.nodes[parent].children[slot] = noID
		}
		return nil
	}
	if child.arena != a {
		return a.reject(op, parent, ErrForeignArena)
	}
	if child.id == parent {
		return a.reject(op, parent, ErrSelfContainment)
	}
	if a.nodes[parent].children[slot] == child.id {
		return nil
	}
	a.detach(child.id)
	if old := a.nodes[parent].children[slot]; old != noID {
		a.nodes[old].parent = noID
	}
	a.nodes[parent].children[slot] = child.id
	a.nodes[child.id].parent = parent
	return nil
}

// SetArg replaces the argument. A null child empties it.
func (u Unary) SetArg(child Expr) error {
	if u.Class() != ClassUnary {
		return ErrNullExpression
	}
	return u.arena.setSlot("SetArg", u.id, 0, child)
}

// SetLeft replaces the left operand. If child is the right operand, the
// right slot is emptied. A null child turns the expression into a Null
// class node and releases both operands.
func (b Binary) SetLeft(child Expr) error { return b.set("SetLeft", 0, child) }

// SetRight replaces the right operand, see SetLeft.
func (b Binary) SetRight(child Expr) error { return b.set("SetRight", 1, child) }

func (b Binary) set(op string, slot int, child Expr) error {
	if b.Class() != ClassBinary {
		return ErrNullExpression
	}
	if child.arena == nil {
		b.collapse()
		return nil
	}
	return b.arena.setSlot(op, b.id, slot, child)
}

func (b Binary) collapse() {
	a := b.arena
	for _, c := range a.nodes[b.id].children {
		if c != noID {
			a.nodes[c].parent = noID
		}
	}
	n := &a.nodes[b.id]
	n.class = ClassNull
	n.children = nil
	a.logger.Debug("binary expression lost an operand", "op", "collapse", "token", n.tok.Name())
}

// Append adds child at the end of the list.
func (n NArg) Append(child Expr) error { return n.insert("Append", n.Len(), child) }

// Prepend adds child at the front of the list.
func (n NArg) Prepend(child Expr) error { return n.insert("Prepend", 0, child) }

// Insert adds child before position i. i must be within [0, Len()];
// other values leave the list unchanged.
func (n NArg) Insert(i int, child Expr) error { return n.insert("Insert", i, child) }

// insert is the common path of Append, Prepend and Insert. A null child
// is stored as an empty slot.
func (n NArg) insert(op string, i int, child Expr) error {
	if n.Class() != ClassNArg {
		return ErrNullExpression
	}
	a := n.arena
	if i < 0 || i > n.Len() {
		return a.reject(op, n.id, ErrIndexOutOfRange)
	}
	if child.arena != nil {
		switch {
		case child.arena != a:
			return a.reject(op, n.id, ErrForeignArena)
		case child.id == n.id:
			return a.reject(op, n.id, ErrSelfContainment)
		case a.nodes[child.id].parent == n.id:
			a.logger.Debug("expression already in list", "op", op, "node", a.describe(child.id))
			return ErrAlreadyMember
		}
		a.detach(child.id)
		a.nodes[child.id].parent = n.id
	}
	nd := &a.nodes[n.id]
	nd.children = slices.Insert(nd.children, i, child.id)
	return nil
}

// Remove removes child from the list and reports whether it was a member.
// The null handle removes the first empty slot.
func (n NArg) Remove(child Expr) bool {
	i := n.IndexOf(child, 0)
	if i < 0 {
		return false
	}
	n.TakeAt(i)
	return true
}

// RemoveAt removes the child at position i.
func (n NArg) RemoveAt(i int) error {
	if n.Class() != ClassNArg {
		return ErrNullExpression
	}
	if i < 0 || i >= n.Len() {
		return n.arena.reject("RemoveAt", n.id, ErrIndexOutOfRange)
	}
	n.TakeAt(i)
	return nil
}

// TakeAt removes the child at position i and returns it without a parent.
// It returns the null handle when i is out of range.
func (n NArg) TakeAt(i int) Expr {
	if i < 0 || i >= n.Len() {
		return Expr{}
	}
	a := n.arena
	nd := &a.nodes[n.id]
	c := nd.children[i]
	nd.children = slices.Delete(nd.children, i, i+1)
	if c != noID {
		a.nodes[c].parent = noID
	}
	return a.handle(c)
}

// SetArguments replaces the argument list. The previous list is released.
// The zero NArg leaves the function without arguments.
func (f Function) SetArguments(args NArg) error {
	if f.Class() != ClassFunction {
		return ErrNullExpression
	}
	if args.arena != nil && args.Class() != ClassNArg {
		return f.arena.reject("SetArguments", f.id, ErrNotArgumentList)
	}
	return f.arena.setSlot("SetArguments", f.id, 0, args.Expr)
}
