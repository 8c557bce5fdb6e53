// Package envbuf provides a growable byte buffer that retains its
// backing capacity across reuse, avoiding per-pair allocation during a
// parse that processes many keys and values from shared scratch space.
package envbuf

// growthFactor is applied when ensureCapacity needs more room than it
// currently has; matches the 1.3x growth the parser's buffers use
// throughout a single pass.
const growthFactor = 1.3

// Buffer is a reusable, growable byte region. The zero value is a valid,
// empty buffer with no backing storage.
type Buffer struct {
	data []byte
}

// Len reports the number of bytes currently held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap reports the current backing capacity.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Bytes returns a view of the buffer's contents. The returned slice is
// only valid until the next mutating call on b.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// ensureCapacity grows the backing array so that at least extra more
// bytes can be appended without reallocating, using the larger of the
// required length and 1.3x the current capacity.
func (b *Buffer) ensureCapacity(extra int) {
	need := len(b.data) + extra
	if need <= cap(b.data) {
		return
	}
	grown := int(float64(cap(b.data)) * growthFactor)
	if grown < need {
		grown = need
	}
	fresh := make([]byte, len(b.data), grown)
	copy(fresh, b.data)
	b.data = fresh
}

// AppendByte appends a single byte, growing the backing array if needed.
func (b *Buffer) AppendByte(c byte) {
	b.ensureCapacity(1)
	b.data = append(b.data, c)
}

// Append appends a byte slice, growing the backing array if needed.
func (b *Buffer) Append(p []byte) {
	b.ensureCapacity(len(p))
	b.data = append(b.data, p...)
}

// Reset clears the buffer's length while retaining its backing capacity
// for the next reuse.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Truncate clips the buffer to length n, discarding trailing bytes.
// Panics if n is negative or greater than the current length.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.data) {
		panic("envbuf: Truncate out of range")
	}
	b.data = b.data[:n]
}

// Grow pre-reserves capacity for at least n total bytes, a hint used by
// the pre-scanner to size keys/values before the first byte is read.
func (b *Buffer) Grow(n int) {
	if n <= cap(b.data) {
		return
	}
	fresh := make([]byte, len(b.data), n)
	copy(fresh, b.data)
	b.data = fresh
}

// Take transfers ownership of the buffer's contents as an exact-sized
// slice, leaving the receiver empty (but with its capacity intact for
// the caller's continued reuse — the returned slice is a fresh copy,
// never an alias of the retained backing array).
func (b *Buffer) Take() []byte {
	if len(b.data) == 0 {
		return nil
	}
	owned := make([]byte, len(b.data))
	copy(owned, b.data)
	b.data = b.data[:0]
	return owned
}
