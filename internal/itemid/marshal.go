package itemid

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// String renders l as a slash-separated path of record names, using the
// braced GUID for GUID records. The root renders as "/" and the absent list
// as "<nil>".
func (l *List) String() string {
	if !l.valid() {
		return "<nil>"
	}

	parts := make([]string, 0, 4)
	for r := range l.Records() {
		parts = append(parts, recordLabel(r))
	}

	return "/" + strings.Join(parts, "/")
}

func recordLabel(r Record) string {
	if name, ok := r.Name(); ok {
		return name
	}

	if id, ok := r.GUID(); ok {
		return FormatGUID(id)
	}

	t, _ := r.Type()

	return "<" + t.String() + ">"
}

// MarshalText implements encoding.TextMarshaler as lower-case hex of the
// list bytes. The absent list marshals to empty text.
func (l *List) MarshalText() ([]byte, error) {
	raw := l.Bytes()
	out := make([]byte, hex.EncodedLen(len(raw)))
	hex.Encode(out, raw)

	return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the
// absent list; anything else must decode to a well-formed list.
func (l *List) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*l = List{}
		return nil
	}

	raw := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(raw, text); err != nil {
		return fmt.Errorf("itemid: decoding hex list: %w", err)
	}

	if err := validate(raw); err != nil {
		return err
	}

	*l = List{buf: raw}

	return nil
}

// Scan implements sql.Scanner for reading lists stored as BLOBs. SQL NULL
// produces the absent list.
func (l *List) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = List{}
		return nil
	case []byte:
		parsed, err := FromBytes(v)
		if err != nil {
			return err
		}

		*l = *parsed

		return nil
	default:
		return fmt.Errorf("itemid.List.Scan: unsupported type %T", src)
	}
}

// Value implements driver.Valuer. The absent list writes SQL NULL.
func (l *List) Value() (driver.Value, error) {
	if !l.valid() {
		return nil, nil
	}

	return l.Bytes(), nil
}

// LogValue implements slog.LogValuer with a per-record dump.
func (l *List) LogValue() slog.Value {
	if !l.valid() {
		return slog.StringValue("<nil>")
	}

	attrs := []slog.Attr{slog.Int("size", l.Size())}

	i := 0
	for r := range l.Records() {
		t, _ := r.Type()
		attrs = append(attrs, slog.String(strconv.Itoa(i),
			fmt.Sprintf("len=%d type=%s name=%q", r.Len(), t, recordLabel(r))))
		i++
	}

	return slog.GroupValue(attrs...)
}

// Compile-time interface assertions.
var (
	_ encoding.TextMarshaler   = (*List)(nil)
	_ encoding.TextUnmarshaler = (*List)(nil)
	_ fmt.Stringer             = (*List)(nil)
	_ driver.Valuer            = (*List)(nil)
	_ sql.Scanner              = (*List)(nil)
	_ slog.LogValuer           = (*List)(nil)
)
