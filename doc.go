// Package reactive turns ordinary functions into the cells of a live
// dependency graph: spreadsheet-style nodes whose values are recomputed
// automatically, minimally and in dependency order when upstream values
// change.
//
// # Overview
//
// The engine is organized around three core concepts:
//
//  1. Nodes: wrapped computations with cached values and binding slots
//  2. Cells: dependency-free nodes mutated directly with Set and Modify
//  3. Waves: one synchronous propagation pass per root mutation that
//     recomputes every transitively affected node exactly once
//
// # Basic Usage
//
// Create a graph and wrap functions into nodes:
//
//	g := reactive.New()
//
//	greet, _ := g.Wrap(func(name string) string {
//	    return "Hello " + name
//	})
//	greet.BindTo("Jane")
//
//	out, _ := greet.Invoke() // "Hello Jane"
//
// A clean node never runs its computation again; the cached value is
// returned as-is until something upstream changes.
//
// # Binding
//
// BindTo fills the open parameter slots of a node left-to-right. Each
// argument is classified at bind time: a node reference becomes a dependency
// edge, the Gap sentinel leaves the slot open for call-time arguments, and
// everything else is stored as a literal.
//
//	a := g.Cell(1)
//	c := g.Cell(3)
//
//	sum, _ := g.Wrap(func(x, y, z int) int { return x + y + z })
//	sum.BindTo(a, reactive.Gap, c)
//
//	out, _ := sum.Invoke(10) // a + 10 + c = 14
//
// BindTo only ever fills slots that are still open; a bound slot is
// immutable. Supplying more arguments than there are open slots fails with
// *BindingArityError.
//
// # Cells and Propagation
//
// Cells originate propagation waves:
//
//	num := g.Cell(0)
//	doubled, _ := g.Wrap(func(v int) int { return v * 2 })
//	doubled.BindTo(num)
//
//	_ = num.Set(21)
//	out, _ := doubled.Invoke() // 42, recomputed during the wave
//
// A wave collects the transitively affected dependents, orders them
// topologically and recomputes each exactly once, so a diamond-shaped graph
// never evaluates its sink twice. Every recompute observes already-fresh
// dependency values. Traversal is iterative throughout; chains of thousands
// of nodes do not grow the call stack.
//
// # Errors
//
// Cycles are a caller error. Direct self-binding is rejected at the BindTo
// call site; a transitive cycle fails the next wave with
// *CyclicDependencyError instead of hanging, as does a mutation started from
// inside a running computation. When a wrapped function returns an error the
// wave aborts with *ComputationError, the node stays dirty, and downstream
// nodes stay dirty too, so the next attempt retries instead of serving a
// stale cache.
//
// # Extensions
//
// Cross-cutting concerns hook into root operations through extensions:
//
//	type TracingExtension struct {
//	    reactive.BaseExtension
//	}
//
//	func (e *TracingExtension) Wrap(next func() (any, error), op *reactive.Operation) (any, error) {
//	    log.Printf("wave %s: %s on %s", op.Wave, op.Kind, op.Node.Name())
//	    return next()
//	}
//
//	g := reactive.New(
//	    reactive.WithExtension(&TracingExtension{
//	        BaseExtension: reactive.NewBaseExtension("tracing"),
//	    }),
//	)
//
// The extensions subpackage ships a structured-logging extension and a
// graph-debug extension that renders the failing node's dependency tree.
//
// # Concurrency
//
// The engine is single-threaded and synchronous. Nothing blocks, nothing
// suspends, and no locking is performed; a Graph must not be shared between
// goroutines without external synchronization. Timers or I/O callbacks that
// drive a Cell are the host's responsibility and look like plain synchronous
// Set calls to the engine.
package reactive
