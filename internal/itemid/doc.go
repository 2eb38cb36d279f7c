// Package itemid implements item ID lists: compact, self-describing,
// variable-length hierarchical identifiers that name items in an abstract
// namespace independent of any backing store.
//
// An identifier (List) is a contiguous byte buffer holding a sequence of
// records followed by a two-byte zero terminator:
//
//	Record := length:u16 | type:u8 | reserved:u8 | payload[length-4]
//	List   := Record* | terminator:u16(=0)
//
// The interpretation of a record's payload belongs to the namespace provider
// that created it, but generic consumers can still clone, concatenate, split,
// compare, and serialize lists. This package also knows the payload layouts
// used by the built-in providers (GUID-named special folders, drives, files
// and folders, network entities) and exposes bounds-checked accessors for
// them.
//
// A nil *List is the absent identifier. The root ("desktop") identifier is a
// non-nil list that holds only the terminator; see NewDesktop.
//
// Lists are single-owner values with no internal locking. Append consumes its
// input list; callers must not share a list across goroutines without their
// own synchronization.
package itemid
