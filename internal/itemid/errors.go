package itemid

import "errors"

// Sentinel errors. Callers match them with errors.Is.
var (
	// ErrMalformed reports a byte sequence that is not a well-formed list.
	ErrMalformed = errors.New("itemid: malformed item ID list")

	// ErrTooLarge reports a record or stream that does not fit its 16-bit
	// length field.
	ErrTooLarge = errors.New("itemid: item ID list too large")

	// ErrNotGUIDType is returned when a GUID record is requested for a
	// type that does not carry a GUID.
	ErrNotGUIDType = errors.New("itemid: type does not carry a GUID")

	// ErrNotNetType is returned when a network record is requested for a
	// non-network type.
	ErrNotNetType = errors.New("itemid: type is not a network type")
)
