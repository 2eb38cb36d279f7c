package itemid

import (
	"encoding/binary"
	"fmt"
	"io"
)

// maxStreamSize is the largest list the 16-bit stream prefix can describe.
const maxStreamSize = 0xFFFF

// Write serializes l to w as a little-endian u16 byte count followed by the
// records and the terminator. The absent list is written as a zero count.
func Write(w io.Writer, l *List) error {
	n := l.Size()
	if n > maxStreamSize {
		return fmt.Errorf("%w: %d bytes exceeds stream limit", ErrTooLarge, n)
	}

	var prefix [2]byte
	binary.LittleEndian.PutUint16(prefix[:], uint16(n))

	if _, err := w.Write(prefix[:]); err != nil {
		return fmt.Errorf("itemid: writing length prefix: %w", err)
	}

	if n == 0 {
		return nil
	}

	if _, err := w.Write(l.buf[:n]); err != nil {
		return fmt.Errorf("itemid: writing %d-byte list: %w", n, err)
	}

	return nil
}

// Read deserializes one list written by Write. A zero count yields the
// absent list and no error. The payload is validated before it is returned;
// a read failure or a malformed payload returns an error and no list.
func Read(r io.Reader) (*List, error) {
	var prefix [2]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("itemid: reading length prefix: %w", err)
	}

	n := int(binary.LittleEndian.Uint16(prefix[:]))
	if n == 0 {
		return nil, nil
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("itemid: reading %d-byte list: %w", n, err)
	}

	if err := validate(buf); err != nil {
		return nil, fmt.Errorf("itemid: rejecting streamed list: %w", err)
	}

	return &List{buf: buf}, nil
}
