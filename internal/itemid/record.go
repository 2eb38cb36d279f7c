package itemid

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Payload offsets, measured from the start of the record.
const (
	guidOffset = headerSize

	driveNameOffset  = headerSize
	driveNameSize    = 20
	drivePayloadSize = driveNameSize + 2

	fileSizeOffset  = headerSize
	fileDateOffset  = headerSize + 4
	fileTimeOffset  = headerSize + 6
	fileAttrOffset  = headerSize + 8
	fileNamesOffset = headerSize + 10
	fileFixedSize   = fileNamesOffset - headerSize

	netNamesOffset = headerSize + 1
)

// FileInfo is the metadata a filesystem provider supplies for NewFile.
type FileInfo struct {
	Name       string
	ShortName  string
	Size       int64
	Attributes Attr
	ModTime    time.Time

	// Created and Accessed are stored only in the wide-name extension.
	Created  time.Time
	Accessed time.Time

	// ExtendedName appends the wide-name extension carrying the UTF-16 name
	// and the creation/access stamps.
	ExtendedName bool
}

// Alloc returns a simple list holding one zero-filled record of type t with
// room for payloadSize bytes after the four-byte header. It returns nil when
// the record would not fit its 16-bit length field.
func Alloc(t Type, payloadSize int) *List {
	cb := payloadSize + headerSize
	if payloadSize < 0 || cb > maxRecordSize {
		return nil
	}

	buf := make([]byte, cb+terminatorSize)
	binary.LittleEndian.PutUint16(buf, uint16(cb))
	buf[2] = byte(t)

	return &List{buf: buf}
}

// NewGUID returns a simple list with one GUID-named record. Only TypeGUID,
// TypeShellExt and TypeYAGUID carry a GUID; other types fail with
// ErrNotGUIDType.
func NewGUID(t Type, id uuid.UUID) (*List, error) {
	if !t.isGUID() {
		return nil, fmt.Errorf("%w: %s", ErrNotGUIDType, t)
	}

	l := Alloc(t, guidSize)
	putGUID(l.buf[guidOffset:], id)

	return l, nil
}

// NewGUIDFromString parses s and returns a TypeGUID record for it.
func NewGUIDFromString(s string) (*List, error) {
	id, err := ParseGUID(s)
	if err != nil {
		return nil, err
	}

	return NewGUID(TypeGUID, id)
}

func mustGUID(t Type, id uuid.UUID) *List {
	l, err := NewGUID(t, id)
	if err != nil {
		panic(err)
	}

	return l
}

// NewMyComputer returns the My Computer special folder.
func NewMyComputer() *List { return mustGUID(TypeGUID, CLSIDMyComputer) }

// NewMyDocuments returns the My Documents special folder.
func NewMyDocuments() *List { return mustGUID(TypeGUID, CLSIDMyDocuments) }

// NewInternet returns the Internet special folder.
func NewInternet() *List { return mustGUID(TypeGUID, CLSIDInternet) }

// NewNetworkPlaces returns the Network Places special folder.
func NewNetworkPlaces() *List { return mustGUID(TypeGUID, CLSIDNetworkPlaces) }

// NewRecycleBin returns the Recycle Bin special folder.
func NewRecycleBin() *List { return mustGUID(TypeGUID, CLSIDRecycleBin) }

// NewControlPanel returns My Computer followed by the Control Panel shell
// extension record.
func NewControlPanel() *List {
	return Combine(NewMyComputer(), mustGUID(TypeShellExt, CLSIDControlPanel))
}

// NewPrinters returns My Computer followed by the Printers record.
func NewPrinters() *List {
	return Combine(NewMyComputer(), mustGUID(TypeYAGUID, CLSIDPrinters))
}

// NewDrive returns a drive record for the first character of letter,
// upper-cased, e.g. "c" becomes "C:\".
func NewDrive(letter string) *List {
	l := Alloc(TypeDrive, drivePayloadSize)

	name := []byte(`X:\`)
	if letter != "" {
		name[0] = strings.ToUpper(letter[:1])[0]
	}

	copy(l.buf[driveNameOffset:], name)

	return l
}

// NewFile returns a Folder record when fi has AttrDirectory set and a Value
// record otherwise. It fails with ErrTooLarge when the names do not fit.
func NewFile(fi FileInfo) (*List, error) {
	name := encodeNarrow(fi.Name)
	short := encodeNarrow(fi.ShortName)

	t := TypeValue
	if fi.Attributes&AttrDirectory != 0 {
		t = TypeFolder
	}

	namesEnd := fileNamesOffset + len(name) + 1 + len(short) + 1
	cb := namesEnd

	var wide []byte
	extOffset := 0

	if fi.ExtendedName {
		wide = encodeWide(fi.Name)
		extOffset = namesEnd + namesEnd%2
		cb = extOffset + extendedNameOffset + len(wide) + 2 + 2
	}

	l := Alloc(t, cb-headerSize)
	if l == nil {
		return nil, fmt.Errorf("%w: file record for %q needs %d bytes", ErrTooLarge, fi.Name, cb)
	}

	rec := l.buf
	date, clock := toDOSDateTime(fi.ModTime)
	binary.LittleEndian.PutUint32(rec[fileSizeOffset:], uint32(fi.Size))
	binary.LittleEndian.PutUint16(rec[fileDateOffset:], date)
	binary.LittleEndian.PutUint16(rec[fileTimeOffset:], clock)
	binary.LittleEndian.PutUint16(rec[fileAttrOffset:], uint16(fi.Attributes))

	copy(rec[fileNamesOffset:], name)
	copy(rec[fileNamesOffset+len(name)+1:], short)

	if fi.ExtendedName {
		putExtended(rec[:cb], extOffset, wide, fi.Created, fi.Accessed)
	}

	return l, nil
}

// NewNet returns a network record of type t holding name and an optional
// second name (a workgroup's comment). Non-network types fail with
// ErrNotNetType.
func NewNet(t Type, name, second string) (*List, error) {
	if !t.isNet() {
		return nil, fmt.Errorf("%w: %s", ErrNotNetType, t)
	}

	first := encodeNarrow(name)
	other := encodeNarrow(second)

	payload := netNamesOffset - headerSize + len(first) + 1 + len(other) + 1

	l := Alloc(t, payload)
	if l == nil {
		return nil, fmt.Errorf("%w: network record for %q", ErrTooLarge, name)
	}

	copy(l.buf[netNamesOffset:], first)
	copy(l.buf[netNamesOffset+len(first)+1:], other)

	return l, nil
}

// Name returns the record's primary name: the drive string, the long file
// name, or the network name. GUID records and unknown types have none.
func (r Record) Name() (string, bool) {
	raw, ok := r.nameBytes()
	if !ok {
		return "", false
	}

	return decodeNarrow(raw), true
}

func (r Record) nameBytes() ([]byte, bool) {
	t, ok := r.Type()
	if !ok {
		return nil, false
	}

	d := r.data()

	switch {
	case t.isDrive():
		if len(d) <= driveNameOffset {
			return nil, false
		}

		field := d[driveNameOffset:min(len(d), driveNameOffset+driveNameSize)]

		return cstring(field)
	case t.hasFileNames():
		if len(d) <= fileNamesOffset {
			return nil, false
		}

		return cstring(d[fileNamesOffset:])
	case t.isNet():
		if len(d) <= netNamesOffset {
			return nil, false
		}

		return cstring(d[netNamesOffset:])
	}

	return nil, false
}

// ShortName returns the secondary name: the 8.3 alias of a file record or a
// workgroup's second string. Folder1 records carry none.
func (r Record) ShortName() (string, bool) {
	t, ok := r.Type()
	if !ok {
		return "", false
	}

	var start int

	switch {
	case t == TypeFolder || t == TypeValue || t == TypeIESpecial1 || t == TypeIESpecial2:
		start = fileNamesOffset
	case t == TypeWorkgroup:
		start = netNamesOffset
	default:
		return "", false
	}

	d := r.data()
	if len(d) <= start {
		return "", false
	}

	first, ok := cstring(d[start:])
	if !ok {
		return "", false
	}

	second, ok := cstring(d[start+len(first)+1:])
	if !ok {
		return "", false
	}

	return decodeNarrow(second), true
}

// GUID returns the GUID of a GUID-named record.
func (r Record) GUID() (uuid.UUID, bool) {
	t, ok := r.Type()
	if !ok || !t.isGUID() {
		return uuid.Nil, false
	}

	d := r.data()
	if len(d) < guidOffset+guidSize {
		return uuid.Nil, false
	}

	return readGUID(d[guidOffset:]), true
}

// Drive returns the drive string ("C:\") of a drive record.
func (r Record) Drive() (string, bool) {
	if !r.IsDrive() {
		return "", false
	}

	return r.Name()
}

// fileHeader returns the record bytes when r is a Folder or Value record
// with a complete fixed header.
func (r Record) fileHeader() ([]byte, bool) {
	t, ok := r.Type()
	if !ok || (t != TypeFolder && t != TypeValue) {
		return nil, false
	}

	d := r.data()
	if len(d) < fileNamesOffset {
		return nil, false
	}

	return d, true
}

// FileSize returns the low 32 bits of the file size stored in a Folder or
// Value record.
func (r Record) FileSize() (uint32, bool) {
	d, ok := r.fileHeader()
	if !ok {
		return 0, false
	}

	return binary.LittleEndian.Uint32(d[fileSizeOffset:]), true
}

// ModTime returns the last-write time of a Folder or Value record, in UTC
// at two-second resolution.
func (r Record) ModTime() (time.Time, bool) {
	d, ok := r.fileHeader()
	if !ok {
		return time.Time{}, false
	}

	return fromDOSDateTime(
		binary.LittleEndian.Uint16(d[fileDateOffset:]),
		binary.LittleEndian.Uint16(d[fileTimeOffset:]),
	)
}

// Attributes returns the attribute bits of a Folder or Value record.
func (r Record) Attributes() (Attr, bool) {
	d, ok := r.fileHeader()
	if !ok {
		return 0, false
	}

	return Attr(binary.LittleEndian.Uint16(d[fileAttrOffset:])), true
}

// IsGUIDType reports whether r is a GUID-named record.
func (r Record) IsGUIDType() bool {
	t, ok := r.Type()
	return ok && t.isGUID()
}

// IsDrive reports whether r is a drive record.
func (r Record) IsDrive() bool {
	t, ok := r.Type()
	return ok && t.isDrive()
}

// IsFolder reports whether r is a folder record. Value records are not
// folders.
func (r Record) IsFolder() bool {
	t, ok := r.Type()
	return ok && t.isFolder()
}

// IsValue reports whether r is a file (value) record.
func (r Record) IsValue() bool {
	t, ok := r.Type()
	return ok && t == TypeValue
}

// IsControlPanelItem reports whether r is a control panel applet record.
func (r Record) IsControlPanelItem() bool {
	t, ok := r.Type()
	return ok && t == TypeControlPanelItem
}

// IsSpecialFolder reports whether r is GUID-named or the terminator of a
// list (the root).
func (r Record) IsSpecialFolder() bool {
	if len(r.b) >= terminatorSize && r.IsTerminator() {
		return true
	}

	return r.IsGUIDType()
}

// IsMyComputer reports whether r names My Computer.
func (r Record) IsMyComputer() bool {
	id, ok := r.GUID()
	return ok && id == CLSIDMyComputer
}

// DriveText returns the drive string of l, skipping a leading My Computer
// record.
func (l *List) DriveText() (string, bool) {
	r, ok := l.First()
	if !ok {
		return "", false
	}

	if r.IsMyComputer() {
		r, _ = r.Next()
	}

	return r.Drive()
}
