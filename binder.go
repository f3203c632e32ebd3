package reactive

import "fmt"

// BindTo fills the node's currently-open binding slots left-to-right with the
// supplied arguments: the Gap sentinel leaves a slot open, a node reference
// fills it with a dependency edge and registers the back-edge, anything else
// is stored as a literal. Already-bound slots are never touched; supplying
// more arguments than there are open slots fails with *BindingArityError and
// leaves the node unchanged. The node itself is returned so binding can be
// chained onto creation.
func (n *Node) BindTo(args ...any) (*Node, error) {
	open := n.openSlots()
	if len(args) > open {
		return nil, &BindingArityError{Node: n, Open: open, Given: len(args)}
	}

	// Classify everything first so a rejected call has no side effects.
	slots := make([]bindingSlot, 0, len(args))
	var deps []*Node
	for _, arg := range args {
		slot, err := n.classify(arg)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
		if slot.kind == slotDependency {
			deps = append(deps, slot.dep)
		}
	}

	filled := 0
	for i := range n.slots {
		if filled == len(slots) {
			break
		}
		if n.slots[i].kind != slotOpen {
			continue
		}
		n.slots[i] = slots[filled]
		filled++
	}
	for _, dep := range deps {
		dep.dependents = appendUnique(dep.dependents, n)
	}
	n.dirty = true
	return n, nil
}

func (n *Node) classify(arg any) (bindingSlot, error) {
	switch v := arg.(type) {
	case *gapMarker:
		// compared by identity: only the Gap singleton opens a slot
		if v != Gap {
			return bindingSlot{kind: slotLiteral, literal: arg}, nil
		}
		return bindingSlot{kind: slotOpen}, nil
	case nodeRef:
		dep := v.node()
		if dep == n {
			return bindingSlot{}, fmt.Errorf("%w: %s", ErrSelfDependency, n.Name())
		}
		if dep.graph != n.graph {
			return bindingSlot{}, fmt.Errorf("%w: %s", ErrForeignNode, dep.Name())
		}
		return bindingSlot{kind: slotDependency, dep: dep}, nil
	default:
		return bindingSlot{kind: slotLiteral, literal: arg}, nil
	}
}

// Detach breaks the node's back-edges out of its dependencies and reopens
// every binding slot, returning the node to its unbound state. The cached
// value is retained but marked stale. Detach is the deterministic teardown
// for hosts that do not want to rely on the whole subgraph becoming
// unreachable at once.
func (n *Node) Detach() {
	for i := range n.slots {
		if n.slots[i].kind == slotDependency {
			dep := n.slots[i].dep
			dep.dependents = removeElement(dep.dependents, n)
		}
		n.slots[i] = bindingSlot{kind: slotOpen}
	}
	n.dirty = true
}
