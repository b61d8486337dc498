package tensor

// Accessor reads and writes tensor elements by logical row-major flat index.
//
// NewAccessor picks one of two implementations once per call: direct slice indexing
// when the tensor IsDirect, otherwise a strided mapping through the tensor's strides.
// Accessors never allocate and are safe for concurrent use on disjoint indices.
type Accessor[T DType] interface {
	Len() int
	At(i int) T
	Set(i int, v T)
}

// NewAccessor returns the fastest Accessor for r's layout.
// Panics if T does not match r's dtype.
func NewAccessor[T DType](r *RawTensor) Accessor[T] {
	if r.IsDirect() {
		return directAccessor[T](dense[T](r))
	}
	return &stridedAccessor[T]{
		data:   Elements[T](r),
		shape:  r.shape,
		stride: r.stride,
		offset: r.offset,
		n:      r.NumElements(),
	}
}

type directAccessor[T DType] []T

func (a directAccessor[T]) Len() int       { return len(a) }
func (a directAccessor[T]) At(i int) T     { return a[i] }
func (a directAccessor[T]) Set(i int, v T) { a[i] = v }

type stridedAccessor[T DType] struct {
	data   []T
	shape  Shape
	stride []int
	offset int
	n      int
}

func (a *stridedAccessor[T]) Len() int { return a.n }

func (a *stridedAccessor[T]) At(i int) T { return a.data[a.pos(i)] }

func (a *stridedAccessor[T]) Set(i int, v T) { a.data[a.pos(i)] = v }

func (a *stridedAccessor[T]) pos(flat int) int {
	p := a.offset
	for i := len(a.shape) - 1; i >= 0; i-- {
		d := a.shape[i]
		p += (flat % d) * a.stride[i]
		flat /= d
	}
	return p
}
