package reactive

// Extension hooks into the root operations of a graph: invocations and cell
// mutations. Extensions see one Operation per wave and can wrap it
// middleware-style.
type Extension interface {
	// Name returns the extension's name.
	Name() string

	// Order determines extension execution order (lower = earlier).
	Order() int

	// Init is called when the extension is registered on a graph.
	Init(g *Graph) error

	// Wrap intercepts a root operation. next runs the rest of the chain and
	// finally the operation itself.
	Wrap(next func() (any, error), op *Operation) (any, error)

	// OnError is called after a root operation fails.
	OnError(err error, op *Operation, g *Graph)

	// Dispose is called when the graph is disposed.
	Dispose(g *Graph) error
}

// BaseExtension provides default implementations for Extension methods.
type BaseExtension struct {
	name string
}

// NewBaseExtension creates a new base extension with the given name.
func NewBaseExtension(name string) BaseExtension {
	return BaseExtension{name: name}
}

func (e *BaseExtension) Name() string {
	return e.name
}

func (e *BaseExtension) Order() int {
	return 100
}

func (e *BaseExtension) Init(g *Graph) error {
	return nil
}

func (e *BaseExtension) Wrap(next func() (any, error), op *Operation) (any, error) {
	return next()
}

func (e *BaseExtension) OnError(err error, op *Operation, g *Graph) {
}

func (e *BaseExtension) Dispose(g *Graph) error {
	return nil
}

// Operation describes one root operation and its propagation wave.
type Operation struct {
	Kind  OperationKind
	Node  *Node
	Graph *Graph
	// Wave is a unique id for the wave, for correlating log lines.
	Wave string
}

// OperationKind represents the type of root operation.
type OperationKind string

const (
	// OpInvoke indicates a node invocation, either a pull read or a root
	// re-invocation with new call-time arguments.
	OpInvoke OperationKind = "invoke"
	// OpSet indicates a cell mutation.
	OpSet OperationKind = "set"
)
