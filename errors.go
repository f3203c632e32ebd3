package reactive

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAFunction indicates Wrap was given a value that is not a function.
	ErrNotAFunction = errors.New("reactive: computation must be a function")
	// ErrVariadicComputation indicates Wrap was given a variadic function.
	ErrVariadicComputation = errors.New("reactive: variadic computations are not supported")
	// ErrBadResultShape indicates a computation with an unsupported result list.
	ErrBadResultShape = errors.New("reactive: computation must return at most one value and an optional trailing error")
	// ErrReceiverArity indicates WithReceiver was used on a computation with no parameters.
	ErrReceiverArity = errors.New("reactive: computation with a receiver needs at least one parameter")
	// ErrSelfDependency indicates a node was bound to itself.
	ErrSelfDependency = errors.New("reactive: node cannot depend on itself")
	// ErrForeignNode indicates a dependency from a different graph was supplied.
	ErrForeignNode = errors.New("reactive: dependency belongs to another graph")
)

// BindingArityError reports a BindTo call that supplied more arguments than
// the target node has open slots.
type BindingArityError struct {
	Node  *Node
	Open  int
	Given int
}

func (e *BindingArityError) Error() string {
	return fmt.Sprintf("reactive: cannot bind %d arguments to %s: only %d open slots", e.Given, e.Node.Name(), e.Open)
}

// InvocationArityError reports a recompute whose call-time arguments do not
// match the node's open slots.
type InvocationArityError struct {
	Node  *Node
	Open  int
	Given int
}

func (e *InvocationArityError) Error() string {
	return fmt.Sprintf("reactive: %s has %d open slots but %d call-time arguments", e.Node.Name(), e.Open, e.Given)
}

// CyclicDependencyError reports a node that was re-entered before it could be
// resolved, either through a dependency cycle or through a mutation started
// from inside an in-progress propagation wave. Cached values of partially
// evaluated nodes remain defined but unspecified; every node downstream of
// the failure stays dirty.
type CyclicDependencyError struct {
	Node *Node
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("reactive: cyclic dependency detected at %s", e.Node.Name())
}

// ComputationError wraps a failure produced while running a node's wrapped
// function, including argument type mismatches. The node's dirty flag stays
// set so the next attempt recomputes instead of serving a stale cache.
type ComputationError struct {
	Node  *Node
	Cause error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("reactive: computation of %s failed: %v", e.Node.Name(), e.Cause)
}

func (e *ComputationError) Unwrap() error {
	return e.Cause
}
