package buffer

import "unsafe"

// Growth policy for BufferMut: every reallocation at least doubles the
// capacity, starting from a minimum of defaultGrowElems, expressed in
// elements rather than bytes so the same policy applies uniformly
// regardless of T's width.
const (
	defaultGrowElems = 1024 * 16 // 16Ki elements, mirrors BlobBufferDefaultSize
)

// BufferMut[T] is a growable builder for a typed buffer, used by compute
// kernels and encoders to accumulate output before freezing it into an
// immutable Buffer[T] (via Freeze). It carries a declared runtime
// alignment that every reallocation performed by Grow preserves.
type BufferMut[T any] struct {
	data      []T
	alignment int
}

// NewMut creates a BufferMut with the given initial capacity, declaring
// T's natural alignment.
func NewMut[T any](capacity int) *BufferMut[T] {
	return WithCapacityAligned[T](capacity, alignOf[T]())
}

// WithCapacityAligned creates a BufferMut with the given initial
// capacity, declaring align as its runtime alignment. align must be at
// least T's natural alignment; it is rounded up to it otherwise.
func WithCapacityAligned[T any](capacity, align int) *BufferMut[T] {
	if natural := alignOf[T](); align < natural {
		align = natural
	}

	return &BufferMut[T]{data: allocAligned[T](capacity, align), alignment: align}
}

// Zeroed creates a length-len BufferMut with every element zero-valued,
// declaring T's natural alignment.
func Zeroed[T any](length int) *BufferMut[T] {
	return ZeroedAligned[T](length, alignOf[T]())
}

// ZeroedAligned creates a length-len BufferMut with every element
// zero-valued, declaring align as its runtime alignment.
func ZeroedAligned[T any](length, align int) *BufferMut[T] {
	b := WithCapacityAligned[T](length, align)
	b.data = b.data[:length]

	return b
}

// Len returns the number of elements written so far.
func (b *BufferMut[T]) Len() int { return len(b.data) }

// Cap returns the current backing capacity.
func (b *BufferMut[T]) Cap() int { return cap(b.data) }

// Alignment returns b's declared runtime alignment in bytes.
func (b *BufferMut[T]) Alignment() int { return b.alignment }

// Reset empties b while retaining its backing storage for reuse.
func (b *BufferMut[T]) Reset() { b.data = b.data[:0] }

// Push appends a single element, growing the backing storage if needed.
func (b *BufferMut[T]) Push(v T) {
	b.Grow(1)
	b.data = append(b.data, v)
}

// PushN appends vs, growing the backing storage if needed.
func (b *BufferMut[T]) PushN(vs ...T) {
	b.Grow(len(vs))
	b.data = append(b.data, vs...)
}

// At returns the element at index i. It panics if i is out of bounds.
func (b *BufferMut[T]) At(i int) T { return b.data[i] }

// Set overwrites the element at index i. It panics if i is out of bounds.
func (b *BufferMut[T]) Set(i int, v T) { b.data[i] = v }

// SetLength sets the length of b to n, zero-extending if n grows it. It
// panics if n is negative or exceeds capacity.
func (b *BufferMut[T]) SetLength(n int) {
	if n < 0 || n > cap(b.data) {
		panic("buffer: SetLength: invalid length")
	}
	b.data = b.data[:n]
}

// Grow ensures at least n additional elements can be appended without a
// further reallocation, preserving b's declared alignment across the
// reallocation.
func (b *BufferMut[T]) Grow(n int) {
	available := cap(b.data) - len(b.data)
	if available >= n {
		return
	}

	newCap := 2 * cap(b.data)
	if newCap < defaultGrowElems {
		newCap = defaultGrowElems
	}
	if newCap < len(b.data)+n {
		newCap = len(b.data) + n
	}

	newData := allocAligned[T](newCap, b.alignment)
	newData = newData[:len(b.data)]
	copy(newData, b.data)
	b.data = newData
}

// Freeze converts b into an immutable Buffer[T], sharing the backing
// storage and declared alignment. Callers must not continue writing to b
// through Push/Set after calling Freeze unless they accept the aliasing.
func (b *BufferMut[T]) Freeze() Buffer[T] {
	return Buffer[T]{data: b.data, alignment: b.alignment}
}

// Raw exposes the backing slice directly for bulk operations (e.g.
// passing to a compression codec).
func (b *BufferMut[T]) Raw() []T { return b.data }

// allocAligned allocates a zero-length, capacity-capacity []T slice
// backed by storage whose first element address is aligned to align
// bytes, over-allocating and advancing past pad bytes exactly as
// BufferMut's growth contract requires.
func allocAligned[T any](capacity, align int) []T {
	var zero T
	width := int(unsafe.Sizeof(zero))
	if width == 0 || capacity == 0 {
		raw := make([]byte, align)
		off := alignPadding(unsafe.Pointer(&raw[0]), align)

		return unsafe.Slice((*T)(unsafe.Pointer(&raw[off])), 0)
	}

	raw := make([]byte, capacity*width+align)
	off := alignPadding(unsafe.Pointer(&raw[0]), align)
	full := unsafe.Slice((*T)(unsafe.Pointer(&raw[off])), capacity)

	return full[:0]
}

// alignPadding returns the number of pad bytes needed to advance p to the
// next address that is a multiple of align.
func alignPadding(p unsafe.Pointer, align int) int {
	rem := int(uintptr(p) % uintptr(align))
	if rem == 0 {
		return 0
	}

	return align - rem
}
