// Package buffer implements the aligned, typed byte buffers that back
// every canonical array's physical storage: an immutable Buffer[T] view
// for reading, and a growable BufferMut[T] builder for constructing new
// arrays, plus a sync.Pool-backed Pool[T] for reusing builder backing
// storage across compute kernel calls.
package buffer

import (
	"unsafe"
)

// Buffer[T] is an immutable, zero-copy typed view over a contiguous
// []T region, carrying a declared runtime alignment that is always at
// least T's natural alignment. Slicing a Buffer never copies: Slice
// returns a new Buffer sharing the same backing array, mirroring
// unsafeDecodeFloat64Slice's reinterpretation of a []byte region as a
// []float64 without copying.
type Buffer[T any] struct {
	data      []T
	alignment int
}

// New wraps data as a Buffer without copying, declaring T's natural
// alignment.
func New[T any](data []T) Buffer[T] {
	return Buffer[T]{data: data, alignment: alignOf[T]()}
}

// Len returns the number of elements in b.
func (b Buffer[T]) Len() int { return len(b.data) }

// Alignment returns b's declared runtime alignment in bytes.
func (b Buffer[T]) Alignment() int { return b.alignment }

// At returns the element at index i. It panics if i is out of bounds.
func (b Buffer[T]) At(i int) T { return b.data[i] }

// Slice returns the half-open range [start, end) of b as a new Buffer
// sharing the same backing storage. The declared alignment is preserved
// for start == 0; otherwise the slice is only guaranteed T's natural
// alignment, since an arbitrary element offset need not preserve a
// stronger declared alignment.
func (b Buffer[T]) Slice(start, end int) Buffer[T] {
	alignment := alignOf[T]()
	if start == 0 {
		alignment = b.alignment
	}

	return Buffer[T]{data: b.data[start:end], alignment: alignment}
}

// Raw returns the backing slice directly. Callers must not mutate it:
// Buffer is documented as immutable and other Arrays may share this
// storage.
func (b Buffer[T]) Raw() []T { return b.data }

// AsBytes reinterprets b as a raw byte view without copying, mirroring
// numeric_raw.go's unsafe.Pointer reinterpretation used for wire
// encode/decode. Used for hashing, block compression, and I/O.
func (b Buffer[T]) AsBytes() []byte {
	if len(b.data) == 0 {
		return nil
	}
	var zero T
	width := int(unsafe.Sizeof(zero))

	return unsafe.Slice((*byte)(unsafe.Pointer(&b.data[0])), len(b.data)*width)
}

// Aligned returns a Buffer whose backing storage is aligned to at least
// align bytes: b itself when it already qualifies (zero-copy), or a
// freshly allocated, copied buffer otherwise.
func (b Buffer[T]) Aligned(align int) Buffer[T] {
	if b.alignment >= align && isPtrAligned(b.data, align) {
		return b
	}

	mb := WithCapacityAligned[T](len(b.data), align)
	mb.PushN(b.data...)

	return mb.Freeze()
}

// ReinterpretBuffer reinterprets a Buffer[byte] as a Buffer[T] without
// copying. It panics if the byte length is not a multiple of T's width,
// matching the alignment invariant every canonical Primitive array relies
// on: every Primitive buffer is aligned to its PType's natural width.
func ReinterpretBuffer[T any](b Buffer[byte]) Buffer[T] {
	var zero T
	width := int(unsafe.Sizeof(zero))
	if width == 0 || len(b.data)%width != 0 {
		panic("buffer: byte length not a multiple of element width")
	}
	if len(b.data) == 0 {
		return Buffer[T]{alignment: alignOf[T]()}
	}

	ptr := (*T)(unsafe.Pointer(&b.data[0]))
	alignment := b.alignment
	if alignment < alignOf[T]() {
		alignment = alignOf[T]()
	}

	return Buffer[T]{data: unsafe.Slice(ptr, len(b.data)/width), alignment: alignment}
}

// alignOf returns T's natural, compiler-chosen alignment in bytes.
func alignOf[T any]() int {
	var zero T

	return int(unsafe.Alignof(zero))
}

// isPtrAligned reports whether data's backing address already satisfies
// align. An empty slice has no address to misalign, so it trivially
// qualifies.
func isPtrAligned[T any](data []T, align int) bool {
	if len(data) == 0 {
		return true
	}

	return uintptr(unsafe.Pointer(&data[0]))%uintptr(align) == 0
}
