package itemid

import (
	"encoding/binary"
	"time"
)

// Wide-name extension layout, measured from the extension's own offset.
// The record's last two bytes hold that offset.
const (
	extendedLenOffset       = 0
	extendedVersionOffset   = 2
	extendedSigOffset       = 4
	extendedCreatedOffset   = 8
	extendedAccessedOffset  = 12
	extendedNameOffset      = 20
	extendedMinSize         = extendedNameOffset + 2
	extendedVersion         = 3
	extendedSignature       = 0xBEEF0004
	extendedOffsetFieldSize = 2

	// minExtendedOffset keeps the extension clear of the fixed file header
	// and at least one byte of name.
	minExtendedOffset = fileNamesOffset + 1
)

// WideName is the wide-name block some file records carry after their
// narrow names.
type WideName struct {
	Name     string
	Created  time.Time
	Accessed time.Time
}

// Extended returns the wide-name extension of a Folder or Value record. Any
// inconsistency in the stored offset or length reports false; the narrow
// fields of the record stay readable either way.
func (r Record) Extended() (WideName, bool) {
	t, ok := r.Type()
	if !ok || !(t.isFolder() || t == TypeValue) {
		return WideName{}, false
	}

	d := r.data()
	cb := len(d)

	if cb < minExtendedOffset+extendedMinSize+extendedOffsetFieldSize {
		return WideName{}, false
	}

	off := int(binary.LittleEndian.Uint16(d[cb-extendedOffsetFieldSize:]))

	switch {
	case off%2 != 0:
		return WideName{}, false
	case off < minExtendedOffset:
		return WideName{}, false
	case off > cb-extendedOffsetFieldSize-extendedMinSize:
		return WideName{}, false
	case cb != off+int(binary.LittleEndian.Uint16(d[off+extendedLenOffset:])):
		return WideName{}, false
	}

	ext := d[off : cb-extendedOffsetFieldSize]

	name, ok := decodeWide(ext[extendedNameOffset:])
	if !ok {
		return WideName{}, false
	}

	created, _ := fromDOSDateTime(
		binary.LittleEndian.Uint16(ext[extendedCreatedOffset:]),
		binary.LittleEndian.Uint16(ext[extendedCreatedOffset+2:]),
	)
	accessed, _ := fromDOSDateTime(
		binary.LittleEndian.Uint16(ext[extendedAccessedOffset:]),
		binary.LittleEndian.Uint16(ext[extendedAccessedOffset+2:]),
	)

	return WideName{Name: name, Created: created, Accessed: accessed}, true
}

// putExtended writes the wide-name extension at off inside rec, which spans
// the whole record, and stores off in the record's last two bytes.
func putExtended(rec []byte, off int, wide []byte, created, accessed time.Time) {
	cb := len(rec)
	ext := rec[off:]

	binary.LittleEndian.PutUint16(ext[extendedLenOffset:], uint16(cb-off))
	binary.LittleEndian.PutUint16(ext[extendedVersionOffset:], extendedVersion)
	binary.LittleEndian.PutUint32(ext[extendedSigOffset:], extendedSignature)

	date, clock := toDOSDateTime(created)
	binary.LittleEndian.PutUint16(ext[extendedCreatedOffset:], date)
	binary.LittleEndian.PutUint16(ext[extendedCreatedOffset+2:], clock)

	date, clock = toDOSDateTime(accessed)
	binary.LittleEndian.PutUint16(ext[extendedAccessedOffset:], date)
	binary.LittleEndian.PutUint16(ext[extendedAccessedOffset+2:], clock)

	copy(ext[extendedNameOffset:], wide)
	binary.LittleEndian.PutUint16(rec[cb-extendedOffsetFieldSize:], uint16(off))
}
