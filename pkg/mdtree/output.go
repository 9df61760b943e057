package mdtree

// Renderer renders a single node into a target representation of type T. It
// uses out to render nested nodes.
type Renderer[T any] func(n *Node, out *Output[T]) (T, error)

// Lookup finds the renderer for a node.
type Lookup[T any] func(n *Node) (Renderer[T], bool)

// MapLookup returns a Lookup that finds renderers by node type.
func MapLookup[T any](m map[string]Renderer[T]) Lookup[T] {
	return func(n *Node) (Renderer[T], bool) {
		r, ok := m[n.Type]
		return r, ok && r != nil
	}
}

// Output is an output engine: it dispatches each node to its renderer. It holds
// no state besides the lookup and may be used concurrently.
type Output[T any] struct {
	lookup Lookup[T]
}

// NewOutput returns an output engine using the given lookup.
func NewOutput[T any](lookup Lookup[T]) *Output[T] {
	return &Output[T]{lookup}
}

// Node renders a single node, returning *UnknownRuleTypeError if the lookup
// finds no renderer for it.
func (o *Output[T]) Node(n *Node) (T, error) {
	r, ok := o.lookup(n)
	if !ok {
		var zero T
		return zero, &UnknownRuleTypeError{n.Type}
	}
	return r(n, o)
}

// Nodes renders each of ns in order. If any of them fails, it returns nil and
// the first error.
func (o *Output[T]) Nodes(ns []*Node) ([]T, error) {
	results := make([]T, len(ns))
	for i, n := range ns {
		r, err := o.Node(n)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}
