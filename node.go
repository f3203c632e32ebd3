package reactive

import (
	"fmt"
	"reflect"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// NodeOption is a modifier for nodes at wrap time.
type NodeOption func(*Node)

// WithName labels a node for logs, errors and debug output.
func WithName(name string) NodeOption {
	return func(n *Node) {
		n.name = name
	}
}

// WithReceiver fixes the computation's first parameter to recv for every
// future invocation. The remaining parameters become the node's binding
// slots.
func WithReceiver(recv any) NodeOption {
	return func(n *Node) {
		n.receiver = recv
		n.hasReceiver = true
	}
}

// Node wraps a computation participating in the dependency graph. It carries
// the cached result of the last run, a dirty flag, the binding slots of its
// parameters and non-owning back-edges to the nodes depending on it.
//
// A Node is not safe for concurrent use; see the package documentation.
type Node struct {
	graph *Graph
	id    uint64
	name  string

	fn          reflect.Value
	fnType      reflect.Type
	receiver    any
	hasReceiver bool
	hasResult   bool
	returnsErr  bool

	slots      []bindingSlot
	dependents []*Node

	cachedValue any
	hasCached   bool
	dirty       bool

	// most recent explicit call-time arguments, reused when a propagation
	// wave recomputes a node with open slots
	lastCallArgs []any
	hasCallArgs  bool
}

func newNode(g *Graph, fn any, opts ...NodeOption) (*Node, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w, got %T", ErrNotAFunction, fn)
	}
	t := v.Type()
	if t.IsVariadic() {
		return nil, ErrVariadicComputation
	}

	n := &Node{
		graph:  g,
		id:     g.nextNodeID(),
		fn:     v,
		fnType: t,
		dirty:  true,
	}
	for _, opt := range opts {
		opt(n)
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errType {
			n.returnsErr = true
		} else {
			n.hasResult = true
		}
	case 2:
		if t.Out(1) != errType {
			return nil, fmt.Errorf("%w: second result is %s", ErrBadResultShape, t.Out(1))
		}
		n.hasResult = true
		n.returnsErr = true
	default:
		return nil, ErrBadResultShape
	}

	arity := t.NumIn()
	if n.hasReceiver {
		if arity == 0 {
			return nil, ErrReceiverArity
		}
		arity--
	}
	n.slots = make([]bindingSlot, arity)

	g.register(n)
	return n, nil
}

// ID returns the node's unique identity within its graph.
func (n *Node) ID() uint64 {
	return n.id
}

// Name returns the label set with WithName, or a generated one.
func (n *Node) Name() string {
	if n.name != "" {
		return n.name
	}
	return fmt.Sprintf("node-%d", n.id)
}

func (n *Node) String() string {
	return n.Name()
}

// Dirty reports whether the cached value is stale.
func (n *Node) Dirty() bool {
	return n.dirty
}

// Peek returns the cached value without resolving.
func (n *Node) Peek() (any, bool) {
	if !n.hasCached {
		return nil, false
	}
	return n.cachedValue, true
}

// Invalidate marks the node dirty without starting a wave. The cached value
// is retained until the next recompute overwrites it.
func (n *Node) Invalidate() {
	n.dirty = true
}

// Dependencies returns the nodes referenced by this node's binding slots.
func (n *Node) Dependencies() []*Node {
	var deps []*Node
	for _, s := range n.slots {
		if s.kind == slotDependency {
			deps = appendUnique(deps, s.dep)
		}
	}
	return deps
}

// Dependents returns a copy of the direct dependents of this node.
func (n *Node) Dependents() []*Node {
	out := make([]*Node, len(n.dependents))
	copy(out, n.dependents)
	return out
}

func (n *Node) openSlots() int {
	open := 0
	for _, s := range n.slots {
		if s.kind == slotOpen {
			open++
		}
	}
	return open
}

// node lets *Node and *Cell both act as binding targets.
func (n *Node) node() *Node {
	return n
}

type nodeRef interface {
	node() *Node
}

// Invoke returns the node's current value. A clean node returns its cache
// without running the computation. A dirty node resolves its slots, pulls
// any stale dependencies and recomputes. Invoking with explicit call-time
// arguments is a root mutation: the node recomputes with the new arguments
// and a propagation wave recomputes every transitively affected dependent
// exactly once, in dependency order.
func (n *Node) Invoke(callArgs ...any) (any, error) {
	if len(callArgs) > 0 {
		return n.graph.invokeRoot(n, callArgs)
	}
	if !n.dirty && n.hasCached {
		return n.cachedValue, nil
	}
	return n.graph.readNode(n)
}

type resolveFrame struct {
	n        *Node
	expanded bool
}

// resolveDirty recomputes root and any transitively stale dependencies with
// an explicit work list. Chains of thousands of nodes must not grow the call
// stack, so recursion is off the table here. A node popped again while its
// own recompute is still pending is a dependency cycle.
func (g *Graph) resolveDirty(root *Node, callArgs []any) (any, error) {
	stack := []resolveFrame{{n: root}}
	inProgress := make(map[*Node]bool)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.expanded {
			var args []any
			if f.n == root {
				args = callArgs
			}
			if err := g.recompute(f.n, args); err != nil {
				return nil, err
			}
			delete(inProgress, f.n)
			continue
		}
		if !f.n.dirty && f.n.hasCached {
			continue
		}
		if inProgress[f.n] {
			return nil, &CyclicDependencyError{Node: f.n}
		}
		inProgress[f.n] = true
		stack = append(stack, resolveFrame{n: f.n, expanded: true})
		for i := len(f.n.slots) - 1; i >= 0; i-- {
			s := f.n.slots[i]
			if s.kind == slotDependency && (s.dep.dirty || !s.dep.hasCached) {
				stack = append(stack, resolveFrame{n: s.dep})
			}
		}
	}

	return root.cachedValue, nil
}

// recompute resolves the node's binding slots and runs the computation. The
// dependency slots read cached values only: the caller guarantees they are
// fresh, either by evaluation order during a wave or by the work list above.
// On failure the node stays dirty and its previous cache is untouched.
func (g *Graph) recompute(n *Node, callArgs []any) error {
	if callArgs == nil && n.hasCallArgs {
		callArgs = n.lastCallArgs
	}
	open := n.openSlots()
	if len(callArgs) != open {
		return &InvocationArityError{Node: n, Open: open, Given: len(callArgs)}
	}

	args := make([]reflect.Value, 0, n.fnType.NumIn())
	param := 0
	if n.hasReceiver {
		rv, err := conform(n.receiver, n.fnType.In(0))
		if err != nil {
			return &ComputationError{Node: n, Cause: err}
		}
		args = append(args, rv)
		param = 1
	}

	next := 0
	for i, s := range n.slots {
		var raw any
		switch s.kind {
		case slotLiteral:
			raw = s.literal
		case slotDependency:
			raw = s.dep.cachedValue
		case slotOpen:
			raw = callArgs[next]
			next++
		}
		rv, err := conform(raw, n.fnType.In(param+i))
		if err != nil {
			return &ComputationError{Node: n, Cause: err}
		}
		args = append(args, rv)
	}

	out := n.fn.Call(args)

	if n.returnsErr {
		errIdx := 0
		if n.hasResult {
			errIdx = 1
		}
		if ev := out[errIdx]; !ev.IsNil() {
			return &ComputationError{Node: n, Cause: ev.Interface().(error)}
		}
	}

	var result any
	if n.hasResult {
		result = out[0].Interface()
	}
	n.cachedValue = result
	n.hasCached = true
	n.dirty = false
	return nil
}

func conform(raw any, t reflect.Type) (reflect.Value, error) {
	if raw == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(raw)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	return reflect.Value{}, fmt.Errorf("argument type error: expected %s, got %T", t, raw)
}
