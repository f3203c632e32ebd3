package extensions

import (
	"fmt"
	"log/slog"

	"github.com/m1gwings/treedrawer/tree"

	reactive "github.com/reactive-fn/reactive-go"
)

// maxRenderDepth bounds the rendered dependency tree; anything deeper is
// elided with a marker.
const maxRenderDepth = 8

// GraphDebugExtension renders the failing node's dependency tree when a root
// operation errors and logs it at ERROR level.
//
// Usage:
//
//	handler := slog.NewTextHandler(os.Stderr, nil)
//	g := reactive.New(reactive.WithExtension(extensions.NewGraphDebugExtension(handler)))
//
// Dirty nodes are marked with an asterisk in the rendered tree, which makes
// the not-yet-recomputed frontier of an aborted wave visible at a glance.
type GraphDebugExtension struct {
	reactive.BaseExtension
	logger *slog.Logger
}

// NewGraphDebugExtension creates a graph debug extension writing through
// handler. A nil handler falls back to slog.Default().
func NewGraphDebugExtension(handler slog.Handler) *GraphDebugExtension {
	logger := slog.Default()
	if handler != nil {
		logger = slog.New(handler)
	}
	return &GraphDebugExtension{
		BaseExtension: reactive.NewBaseExtension("graph-debug"),
		logger:        logger,
	}
}

// OnError logs the dependency tree below the failing node.
func (e *GraphDebugExtension) OnError(err error, op *reactive.Operation, g *reactive.Graph) {
	e.logger.Error("root operation failed",
		"op", string(op.Kind),
		"node", op.Node.Name(),
		"wave", op.Wave,
		"error", err.Error(),
		"dependency_tree", renderDependencyTree(op.Node),
	)
}

// renderDependencyTree draws the dependency tree below n. Shared
// dependencies appear once per path; cycles are cut with a marker instead of
// recursing forever.
func renderDependencyTree(n *reactive.Node) string {
	t := tree.NewTree(tree.NodeString(label(n)))
	addDependencies(t, n, map[*reactive.Node]bool{n: true}, maxRenderDepth)
	return fmt.Sprintf("\n%v", t)
}

func addDependencies(t *tree.Tree, n *reactive.Node, path map[*reactive.Node]bool, depth int) {
	for i, dep := range n.Dependencies() {
		if path[dep] {
			t.AddChild(tree.NodeString(label(dep) + " (cycle)"))
			continue
		}
		if depth == 0 {
			t.AddChild(tree.NodeString("…"))
			continue
		}
		t.AddChild(tree.NodeString(label(dep)))
		child, err := t.Child(i)
		if err != nil {
			continue
		}
		path[dep] = true
		addDependencies(child, dep, path, depth-1)
		delete(path, dep)
	}
}

func label(n *reactive.Node) string {
	if n.Dirty() {
		return n.Name() + " *"
	}
	return n.Name()
}
