package reactive

// gapMarker is the type behind the Gap sentinel. The padding byte keeps the
// struct non-zero-sized so pointer identity is well defined.
type gapMarker struct{ _ byte }

// Gap is the singleton sentinel used positionally in BindTo calls to mean
// "leave this slot open for call-time arguments". It is compared by identity
// and is never passed to a wrapped computation.
var Gap = &gapMarker{}

type slotKind uint8

const (
	slotOpen slotKind = iota
	slotLiteral
	slotDependency
)

// bindingSlot is one parameter position of a node's computation: a literal
// value, a dependency edge to another node, or open for call-time arguments.
type bindingSlot struct {
	kind    slotKind
	literal any
	dep     *Node
}
