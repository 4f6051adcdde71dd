package hashing

// NodeHasher combines two child values into their parent value.
// Implementations must be pure and safe for concurrent use.
type NodeHasher interface {
	HashNode(left, right HashValue) HashValue
}

// NodeHashFunc adapts a plain function to NodeHasher.
type NodeHashFunc func(left, right HashValue) HashValue

func (f NodeHashFunc) HashNode(left, right HashValue) HashValue {
	return f(left, right)
}

// LeafHasher encodes a tuple of typed values into a leaf value.
type LeafHasher interface {
	HashLeaf(values ...interface{}) (HashValue, error)
}

// LeafHashFunc adapts a plain function to LeafHasher.
type LeafHashFunc func(values ...interface{}) (HashValue, error)

func (f LeafHashFunc) HashLeaf(values ...interface{}) (HashValue, error) {
	return f(values...)
}

// OrderIndependent is implemented by node hashers whose output does not depend
// on the order of the two children. Proofs for such hashers do not need sides.
type OrderIndependent interface {
	OrderIndependent() bool
}

// IsOrderIndependent reports whether h declares itself order independent.
func IsOrderIndependent(h NodeHasher) bool {
	oi, ok := h.(OrderIndependent)
	return ok && oi.OrderIndependent()
}
