package itemid

import (
	"encoding/binary"
	"fmt"
	"iter"
)

// Layout constants shared by every record type.
const (
	headerSize     = 4 // length:u16, type:u8, reserved:u8
	terminatorSize = 2
	minRecordSize  = 3 // length field plus the type tag
	maxRecordSize  = 0xFFFF
)

// List is an item ID list. It owns its buffer: no two lists share storage,
// and every constructor in this package returns a freshly allocated list.
//
// A nil *List is the absent identifier, distinct from the root list.
type List struct {
	buf      []byte
	released bool
}

// Record is a read-only view of one record inside a list, or of the list's
// terminator. A view stays valid until the list it came from is mutated
// (RemoveLast) or released.
type Record struct {
	// b runs from the record's first byte to the end of the list buffer.
	b []byte
}

// NewDesktop returns the root identifier: a list with no records.
func NewDesktop() *List {
	return &List{buf: make([]byte, terminatorSize)}
}

// FromBytes validates b and returns a list holding a copy of it. The slice
// must contain exactly the records and the terminator, nothing more.
func FromBytes(b []byte) (*List, error) {
	if err := validate(b); err != nil {
		return nil, err
	}

	buf := make([]byte, len(b))
	copy(buf, b)

	return &List{buf: buf}, nil
}

// validate checks that every record length is self-consistent and that the
// terminator sits exactly at the end of b.
func validate(b []byte) error {
	off := 0

	for {
		if len(b)-off < terminatorSize {
			return fmt.Errorf("%w: missing terminator at offset %d", ErrMalformed, off)
		}

		cb := int(binary.LittleEndian.Uint16(b[off:]))
		if cb == 0 {
			if trailing := len(b) - off - terminatorSize; trailing != 0 {
				return fmt.Errorf("%w: %d bytes after terminator", ErrMalformed, trailing)
			}

			return nil
		}

		if cb < minRecordSize {
			return fmt.Errorf("%w: record at offset %d has length %d", ErrMalformed, off, cb)
		}

		if cb > len(b)-off-terminatorSize {
			return fmt.Errorf("%w: record at offset %d overruns the buffer", ErrMalformed, off)
		}

		off += cb
	}
}

// Released reports whether the list was consumed by Append or Release.
// A released list behaves as the absent identifier.
func (l *List) Released() bool {
	return l != nil && l.released
}

// Release drops the list's buffer. Any later use sees an absent identifier.
func (l *List) Release() {
	if l == nil {
		return
	}

	l.buf = nil
	l.released = true
}

// valid reports whether l holds a buffer.
func (l *List) valid() bool {
	return l != nil && l.buf != nil
}

// First returns the first record, which is the terminator for the root
// list. It reports false for an absent list.
func (l *List) First() (Record, bool) {
	if !l.valid() {
		return Record{}, false
	}

	return Record{b: l.buf}, true
}

// Size returns the byte size of the list including the terminator. The
// absent list has size 0.
func (l *List) Size() int {
	if !l.valid() {
		return 0
	}

	return tailSize(l.buf)
}

// tailSize walks the records starting at b and returns their total length
// plus the terminator.
func tailSize(b []byte) int {
	n := 0
	r := Record{b: b}

	for !r.IsTerminator() {
		n += r.Len()
		r, _ = r.Next()
	}

	return n + terminatorSize
}

// Count returns the number of records before the terminator.
func (l *List) Count() int {
	n := 0
	for range l.Records() {
		n++
	}

	return n
}

// Records iterates over the records of l, excluding the terminator.
func (l *List) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		r, ok := l.First()
		if !ok {
			return
		}

		for !r.IsTerminator() {
			if !yield(r) {
				return
			}

			r, _ = r.Next()
		}
	}
}

// IsRoot reports whether l is the root identifier. The absent list is not
// the root.
func (l *List) IsRoot() bool {
	r, ok := l.First()
	return ok && r.IsTerminator()
}

// IsDesktop is an alias for IsRoot.
func (l *List) IsDesktop() bool {
	return l.IsRoot()
}

// IsSimple reports whether l holds exactly one record.
func (l *List) IsSimple() bool {
	r, ok := l.First()
	if !ok || r.IsTerminator() {
		return false
	}

	next, _ := r.Next()

	return next.IsTerminator()
}

// Bytes returns a copy of the list's records and terminator.
func (l *List) Bytes() []byte {
	n := l.Size()
	if n == 0 {
		return nil
	}

	out := make([]byte, n)
	copy(out, l.buf)

	return out
}

// Last returns the last record before the terminator. For the root list it
// returns the terminator itself. It reports false for an absent list.
func (l *List) Last() (Record, bool) {
	r, ok := l.First()
	if !ok {
		return Record{}, false
	}

	last := r
	for !r.IsTerminator() {
		last = r
		r, _ = r.Next()
	}

	return last, true
}

// RemoveLast turns the last record into the terminator. It returns false
// and does nothing for the absent or root list.
func (l *List) RemoveLast() bool {
	if !l.valid() || l.IsRoot() {
		return false
	}

	last, _ := l.Last()
	binary.LittleEndian.PutUint16(last.b, 0)

	return true
}

// Clone returns an independent copy of l. Cloning the absent list returns nil.
func (l *List) Clone() *List {
	if !l.valid() {
		return nil
	}

	return &List{buf: l.Bytes()}
}

// CloneFirst returns a list holding only the first record of l. The root
// list clones to a new root list.
func (l *List) CloneFirst() *List {
	r, ok := l.First()
	if !ok {
		return nil
	}

	cb := r.Len()
	buf := make([]byte, cb+terminatorSize)
	copy(buf, r.b[:cb])

	return &List{buf: buf}
}

// Combine returns a new list with b's records appended to a's. If either
// argument is absent the result is a clone of the other; if both are absent
// the result is nil. Neither input is modified.
func Combine(a, b *List) *List {
	switch {
	case !a.valid() && !b.valid():
		return nil
	case !a.valid():
		return b.Clone()
	case !b.valid():
		return a.Clone()
	}

	lenA := a.Size() - terminatorSize
	lenB := b.Size()
	buf := make([]byte, lenA+lenB)
	copy(buf, a.buf[:lenA])
	copy(buf[lenA:], b.buf[:lenB])

	return &List{buf: buf}
}

// Append adds item to the end of l (atEnd) or to its front, and returns the
// result as a new list. If l is the root or absent the result is a clone of
// item.
//
// Append consumes l: it is released before Append returns and must not be
// used again. item is not modified.
func Append(l, item *List, atEnd bool) *List {
	var out *List

	switch {
	case !l.valid() || l.IsRoot():
		out = item.Clone()
	case atEnd:
		out = Combine(l, item)
	default:
		out = Combine(item, l)
	}

	l.Release()

	return out
}

// Tail returns an independent list that starts at r and runs to the end of
// the list r was taken from. The terminator record yields a root list.
func (r Record) Tail() *List {
	if len(r.b) < terminatorSize {
		return nil
	}

	n := tailSize(r.b)
	buf := make([]byte, n)
	copy(buf, r.b[:n])

	return &List{buf: buf}
}

// Len returns the record's declared length, 0 for the terminator.
func (r Record) Len() int {
	if len(r.b) < terminatorSize {
		return 0
	}

	cb := int(binary.LittleEndian.Uint16(r.b))
	if cb > len(r.b) {
		return 0
	}

	return cb
}

// IsTerminator reports whether r is the zero-length end marker. The zero
// Record is treated as a terminator.
func (r Record) IsTerminator() bool {
	return r.Len() == 0
}

// Next returns the record following r. It reports false when r is the
// terminator.
func (r Record) Next() (Record, bool) {
	cb := r.Len()
	if cb == 0 {
		return Record{}, false
	}

	return Record{b: r.b[cb:]}, true
}

// Bytes returns a copy of the record's bytes including its length field.
// The terminator has no bytes.
func (r Record) Bytes() []byte {
	cb := r.Len()
	if cb == 0 {
		return nil
	}

	out := make([]byte, cb)
	copy(out, r.b[:cb])

	return out
}

// Type returns the record's type tag. The terminator reports false.
func (r Record) Type() (Type, bool) {
	if r.Len() < minRecordSize {
		return 0, false
	}

	return Type(r.b[2]), true
}

// data returns the record's own bytes, nil for the terminator.
func (r Record) data() []byte {
	cb := r.Len()
	if cb < minRecordSize {
		return nil
	}

	return r.b[:cb]
}
