package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probeExtension struct {
	BaseExtension
	order    int
	log      *[]string
	tag      string
	errs     []error
	disposed bool
}

func (e *probeExtension) Order() int {
	return e.order
}

func (e *probeExtension) Wrap(next func() (any, error), op *Operation) (any, error) {
	*e.log = append(*e.log, e.tag+":before:"+string(op.Kind))
	result, err := next()
	*e.log = append(*e.log, e.tag+":after:"+string(op.Kind))
	return result, err
}

func (e *probeExtension) OnError(err error, op *Operation, g *Graph) {
	e.errs = append(e.errs, err)
}

func (e *probeExtension) Dispose(g *Graph) error {
	e.disposed = true
	return nil
}

func TestExtensionWrapOrdering(t *testing.T) {
	var log []string
	outer := &probeExtension{BaseExtension: NewBaseExtension("outer"), order: 1, log: &log, tag: "outer"}
	inner := &probeExtension{BaseExtension: NewBaseExtension("inner"), order: 2, log: &log, tag: "inner"}

	// Registration order must not matter; Order does.
	g := New(WithExtension(inner), WithExtension(outer))

	c := g.Cell(0)
	require.NoError(t, c.Set(1))

	assert.Equal(t, []string{
		"outer:before:set",
		"inner:before:set",
		"inner:after:set",
		"outer:after:set",
	}, log)
}

func TestExtensionSeesWaveIDs(t *testing.T) {
	seen := map[string]bool{}
	rec := &waveRecorder{BaseExtension: NewBaseExtension("waves"), seen: seen}
	g := New(WithExtension(rec))

	c := g.Cell(0)
	require.NoError(t, c.Set(1))
	require.NoError(t, c.Set(2))

	assert.Len(t, seen, 2, "every wave carries its own id")
}

type waveRecorder struct {
	BaseExtension
	seen map[string]bool
}

func (e *waveRecorder) Wrap(next func() (any, error), op *Operation) (any, error) {
	if op.Wave != "" {
		e.seen[op.Wave] = true
	}
	return next()
}

func TestExtensionOnError(t *testing.T) {
	var log []string
	probe := &probeExtension{BaseExtension: NewBaseExtension("probe"), order: 1, log: &log, tag: "probe"}
	g := New(WithExtension(probe))

	x, err := g.Wrap(func(v int) int { return v })
	require.NoError(t, err)
	y, err := g.Wrap(func(v int) int { return v })
	require.NoError(t, err)
	_, err = x.BindTo(y)
	require.NoError(t, err)
	_, err = y.BindTo(x)
	require.NoError(t, err)

	_, err = x.Invoke()
	require.Error(t, err)

	require.Len(t, probe.errs, 1)
	var cycleErr *CyclicDependencyError
	assert.ErrorAs(t, probe.errs[0], &cycleErr)
}

func TestExtensionObservesReentrantMutation(t *testing.T) {
	var log []string
	probe := &probeExtension{BaseExtension: NewBaseExtension("probe"), order: 1, log: &log, tag: "probe"}
	g := New(WithExtension(probe))

	trigger := g.Cell(0, WithName("trigger"))
	other := g.Cell(0, WithName("other"))

	n, err := g.Wrap(func(v int) (int, error) {
		if err := other.Set(v); err != nil {
			return 0, err
		}
		return v, nil
	})
	require.NoError(t, err)
	_, err = n.BindTo(trigger)
	require.NoError(t, err)

	err = trigger.Set(7)
	require.Error(t, err)

	// The rejected inner set runs through the chain like any other root
	// operation: the extension sees its error and then the outer wave's.
	require.Len(t, probe.errs, 2)
	var cycleErr *CyclicDependencyError
	assert.ErrorAs(t, probe.errs[0], &cycleErr)
	assert.Contains(t, log, "probe:before:set")
	assert.Contains(t, log, "probe:after:set")
}

func TestDispose(t *testing.T) {
	var log []string
	probe := &probeExtension{BaseExtension: NewBaseExtension("probe"), order: 1, log: &log, tag: "probe"}
	g := New(WithExtension(probe))

	require.NoError(t, g.Dispose())
	assert.True(t, probe.disposed)
}

func TestCleanReadsBypassExtensions(t *testing.T) {
	var log []string
	probe := &probeExtension{BaseExtension: NewBaseExtension("probe"), order: 1, log: &log, tag: "probe"}
	g := New(WithExtension(probe))

	n, err := g.Wrap(func() int { return 1 })
	require.NoError(t, err)

	_, err = n.Invoke()
	require.NoError(t, err)
	require.Len(t, log, 2, "the first read resolves and is wrapped")

	_, err = n.Invoke()
	require.NoError(t, err)
	assert.Len(t, log, 2, "a memoized read never enters the extension chain")
}
