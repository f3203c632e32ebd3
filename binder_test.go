package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGapBinding(t *testing.T) {
	g := New()

	a := g.Cell(1)
	c := g.Cell(3)

	sum, err := g.Wrap(func(x, y, z int) int { return x + y + z })
	require.NoError(t, err)

	same, err := sum.BindTo(a, Gap, c)
	require.NoError(t, err)
	assert.Same(t, sum, same, "BindTo returns the bound node for chaining")

	out, err := sum.Invoke(10)
	require.NoError(t, err)
	assert.Equal(t, 14, out)
}

func TestBindingArityError(t *testing.T) {
	g := New()

	n, err := g.Wrap(func(a, b int) int { return a + b })
	require.NoError(t, err)

	_, err = n.BindTo(1, 2, 3)
	var arityErr *BindingArityError
	require.ErrorAs(t, err, &arityErr)
	assert.Equal(t, 2, arityErr.Open)
	assert.Equal(t, 3, arityErr.Given)

	// The rejected call must leave the node untouched.
	_, err = n.BindTo(1, 2)
	require.NoError(t, err)
	out, err := n.Invoke()
	require.NoError(t, err)
	assert.Equal(t, 3, out)
}

func TestBindToFillsOnlyOpenSlots(t *testing.T) {
	g := New()

	n, err := g.Wrap(func(a, b string) string { return a + b })
	require.NoError(t, err)

	_, err = n.BindTo("left-")
	require.NoError(t, err)
	_, err = n.BindTo("right")
	require.NoError(t, err)

	out, err := n.Invoke()
	require.NoError(t, err)
	assert.Equal(t, "left-right", out, "the second bind must not overwrite the first slot")

	// All slots bound: nothing left to fill.
	_, err = n.BindTo("again")
	var arityErr *BindingArityError
	require.ErrorAs(t, err, &arityErr)
	assert.Equal(t, 0, arityErr.Open)
}

func TestSelfBindingRejected(t *testing.T) {
	g := New()

	n, err := g.Wrap(func(v int) int { return v })
	require.NoError(t, err)

	_, err = n.BindTo(n)
	require.ErrorIs(t, err, ErrSelfDependency)
	assert.Equal(t, 1, n.openSlots(), "the rejected bind must not fill the slot")
}

func TestForeignGraphRejected(t *testing.T) {
	g1 := New()
	g2 := New()

	foreign := g2.Cell(1)
	n, err := g1.Wrap(func(v int) int { return v })
	require.NoError(t, err)

	_, err = n.BindTo(foreign)
	require.ErrorIs(t, err, ErrForeignNode)
}

func TestDependentsMirrorBindings(t *testing.T) {
	g := New()

	a := g.Cell(1)
	n, err := g.Wrap(func(x, y int) int { return x + y })
	require.NoError(t, err)

	_, err = n.BindTo(a, a)
	require.NoError(t, err)

	deps := n.Dependencies()
	require.Len(t, deps, 1, "duplicate references collapse to one dependency edge")
	assert.Same(t, a.Node, deps[0])

	dependents := a.Dependents()
	require.Len(t, dependents, 1)
	assert.Same(t, n, dependents[0])
}

func TestDetach(t *testing.T) {
	g := New()

	src := g.Cell(1)
	calls := 0
	n, err := g.Wrap(func(v int) int {
		calls++
		return v * 10
	})
	require.NoError(t, err)
	_, err = n.BindTo(src)
	require.NoError(t, err)

	out, err := n.Invoke()
	require.NoError(t, err)
	assert.Equal(t, 10, out)
	assert.Equal(t, 1, calls)

	n.Detach()
	assert.Empty(t, src.Dependents(), "detach removes the back-edge")
	assert.Empty(t, n.Dependencies())

	require.NoError(t, src.Set(2))
	assert.Equal(t, 1, calls, "a detached node is outside any wave")

	// The reopened slot consumes call-time arguments again.
	out, err = n.Invoke(5)
	require.NoError(t, err)
	assert.Equal(t, 50, out)
}

func TestGapIsIdentityComparable(t *testing.T) {
	g := New()

	n, err := g.Wrap(func(a, b any) any { return a })
	require.NoError(t, err)

	// Only the Gap singleton opens a slot; another value of the same type is
	// an ordinary literal.
	other := &gapMarker{}
	_, err = n.BindTo(Gap, other)
	require.NoError(t, err)
	assert.Equal(t, 1, n.openSlots())

	out, err := n.Invoke("call-time")
	require.NoError(t, err)
	assert.Equal(t, "call-time", out)
}
