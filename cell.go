package reactive

import "github.com/google/uuid"

// Cell is a state cell: a degenerate node with no upstream dependencies
// whose value is mutated directly. Its computation is the identity read of
// the internal value, so a Cell can be bound as a dependency and invoked
// like any other node.
type Cell struct {
	*Node
	value any
}

// Cell creates a state cell seeded with initial. Mutating it with Set or
// Modify is what originates propagation waves.
func (g *Graph) Cell(initial any, opts ...NodeOption) *Cell {
	c := &Cell{value: initial}
	n, err := newNode(g, func() any { return c.value }, opts...)
	if err != nil {
		// the identity read is a valid computation; this cannot fail
		panic(err)
	}
	c.Node = n
	n.cachedValue = initial
	n.hasCached = true
	n.dirty = false
	return c
}

// Set replaces the cell's value unconditionally and runs a propagation wave
// rooted at the cell. There is no equality short-circuit: setting an equal
// value still recomputes every dependent. The new value is not returned; the
// result is the first error of the wave, reported synchronously at the set
// site.
func (c *Cell) Set(v any) error {
	g := c.Node.graph
	op := &Operation{Kind: OpSet, Node: c.Node, Graph: g, Wave: uuid.NewString()}
	_, err := g.runWrapped(op, func() (any, error) {
		if g.busy {
			return nil, &CyclicDependencyError{Node: c.Node}
		}
		g.busy = true
		defer func() { g.busy = false }()

		c.value = v
		c.Node.cachedValue = v
		c.Node.hasCached = true
		c.Node.dirty = false
		return nil, g.propagateFrom(c.Node)
	})
	return err
}

// Modify replaces the value with fn applied to the current one. The current
// value is read without triggering a wave; the replacement then propagates
// exactly like Set.
func (c *Cell) Modify(fn func(any) any) error {
	return c.Set(fn(c.value))
}

// Value reads the internal value without resolving or propagating anything.
func (c *Cell) Value() any {
	return c.value
}
