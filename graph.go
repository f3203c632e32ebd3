package reactive

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/google/uuid"
)

var graphCounter atomic.Uint64

// Graph is the facade of the engine: it creates nodes and cells, owns the
// node registry, runs propagation waves and carries the extension chain.
//
// A Graph and everything in it is single-threaded by design. Binding,
// invocation and propagation all run to completion before control returns to
// the caller; any asynchrony belongs to the host.
type Graph struct {
	id         string
	nodes      []*Node
	extensions []Extension

	// set while a wave or a pull resolution is running; a mutation arriving
	// while busy is a reentrant wave and is rejected as a cycle
	busy bool

	nodeCounter uint64
}

// Option is a modifier for graphs.
type Option func(*Graph)

// WithExtension returns an option that registers an extension on a graph.
func WithExtension(ext Extension) Option {
	return func(g *Graph) {
		if err := g.UseExtension(ext); err != nil {
			panic(err)
		}
	}
}

// New creates an empty dependency graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		id: fmt.Sprintf("graph-%d", graphCounter.Add(1)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the graph's identifier.
func (g *Graph) ID() string {
	return g.id
}

// Wrap turns a plain function into a node of the graph. The function must
// not be variadic and may return nothing, a single value, an error, or a
// value and an error. Each parameter becomes one binding slot; WithReceiver
// reserves the first parameter for the fixed receiver instead.
func (g *Graph) Wrap(fn any, opts ...NodeOption) (*Node, error) {
	return newNode(g, fn, opts...)
}

// UseExtension registers an extension on the graph.
func (g *Graph) UseExtension(ext Extension) error {
	g.extensions = append(g.extensions, ext)
	sort.SliceStable(g.extensions, func(i, j int) bool {
		return g.extensions[i].Order() < g.extensions[j].Order()
	})
	return ext.Init(g)
}

// Dispose shuts down the graph's extensions.
func (g *Graph) Dispose() error {
	for _, ext := range g.extensions {
		if err := ext.Dispose(g); err != nil {
			return fmt.Errorf("disposing extension %s: %w", ext.Name(), err)
		}
	}
	return nil
}

// Nodes returns a copy of every node created on this graph, in creation
// order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Validate ensures the whole binding graph is acyclic. Propagation waves
// detect cycles on their own; Validate lets a host check eagerly after
// wiring instead of at the first mutation.
func (g *Graph) Validate() error {
	indegree := make(map[*Node]int, len(g.nodes))
	for _, n := range g.nodes {
		indegree[n] = len(n.Dependencies())
	}

	queue := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		if indegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	processed := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		processed++
		for _, d := range n.dependents {
			indegree[d]--
			if indegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if processed != len(g.nodes) {
		for _, n := range g.nodes {
			if indegree[n] > 0 {
				return &CyclicDependencyError{Node: n}
			}
		}
	}
	return nil
}

func (g *Graph) nextNodeID() uint64 {
	g.nodeCounter++
	return g.nodeCounter
}

func (g *Graph) register(n *Node) {
	g.nodes = append(g.nodes, n)
}

// readNode is the pull-based read path: resolve the node and any stale
// dependencies without starting a wave. The graph must already be consistent;
// a dirty read arriving mid-wave means a computation re-entered the engine.
func (g *Graph) readNode(n *Node) (any, error) {
	op := &Operation{Kind: OpInvoke, Node: n, Graph: g, Wave: uuid.NewString()}
	return g.runWrapped(op, func() (any, error) {
		if g.busy {
			return nil, &CyclicDependencyError{Node: n}
		}
		g.busy = true
		defer func() { g.busy = false }()
		return g.resolveDirty(n, nil)
	})
}

// invokeRoot is the root mutation started by invoking a node with explicit
// call-time arguments: recompute the node with the new arguments, then run a
// propagation wave over its dependents.
func (g *Graph) invokeRoot(n *Node, callArgs []any) (any, error) {
	// Validate arity before touching the node: a rejected call must not
	// replace the remembered arguments of the last accepted one.
	if open := n.openSlots(); len(callArgs) != open {
		return nil, &InvocationArityError{Node: n, Open: open, Given: len(callArgs)}
	}
	op := &Operation{Kind: OpInvoke, Node: n, Graph: g, Wave: uuid.NewString()}
	return g.runWrapped(op, func() (any, error) {
		if g.busy {
			return nil, &CyclicDependencyError{Node: n}
		}
		g.busy = true
		defer func() { g.busy = false }()

		n.lastCallArgs = append([]any(nil), callArgs...)
		n.hasCallArgs = true
		n.dirty = true
		if _, err := g.resolveDirty(n, callArgs); err != nil {
			return nil, err
		}
		if err := g.propagateFrom(n); err != nil {
			return nil, err
		}
		return n.cachedValue, nil
	})
}

// runWrapped chains the extension middleware around a root operation, last
// registered wrapping first, and reports failures to every extension.
func (g *Graph) runWrapped(op *Operation, inner func() (any, error)) (any, error) {
	next := inner
	for i := len(g.extensions) - 1; i >= 0; i-- {
		ext := g.extensions[i]
		currentNext := next
		next = func() (any, error) {
			return ext.Wrap(currentNext, op)
		}
	}

	result, err := next()
	if err != nil {
		for _, ext := range g.extensions {
			ext.OnError(err, op, g)
		}
	}
	return result, err
}

func appendUnique[T comparable](slice []T, item T) []T {
	for _, existing := range slice {
		if existing == item {
			return slice
		}
	}
	return append(slice, item)
}

func removeElement[T comparable](slice []T, item T) []T {
	for i, existing := range slice {
		if existing == item {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}
