package itemid

import "fmt"

// Type is the one-byte tag that selects a record's payload layout.
type Type uint8

// Record type tags. Values match the on-disk format written by the built-in
// namespace providers.
const (
	TypeControlPanelItem Type = 0x00
	TypeGUID             Type = 0x1F
	TypeDrive            Type = 0x23
	TypeDrive2           Type = 0x25
	TypeDrive3           Type = 0x29
	TypeShellExt         Type = 0x2E
	TypeDrive1           Type = 0x2F
	TypeFolder1          Type = 0x30
	TypeFolder           Type = 0x31
	TypeValue            Type = 0x32
	TypeWorkgroup        Type = 0x41
	TypeComputer         Type = 0x42
	TypeNetProvider      Type = 0x46
	TypeNetwork          Type = 0x47
	TypeIESpecial1       Type = 0x61
	TypeYAGUID           Type = 0x70
	TypeIESpecial2       Type = 0xB1
	TypeShare            Type = 0xC3
)

var typeNames = map[Type]string{
	TypeControlPanelItem: "cpanel",
	TypeGUID:             "guid",
	TypeDrive:            "drive",
	TypeDrive2:           "drive2",
	TypeDrive3:           "drive3",
	TypeShellExt:         "shellext",
	TypeDrive1:           "drive1",
	TypeFolder1:          "folder1",
	TypeFolder:           "folder",
	TypeValue:            "value",
	TypeWorkgroup:        "workgroup",
	TypeComputer:         "computer",
	TypeNetProvider:      "netprovider",
	TypeNetwork:          "network",
	TypeIESpecial1:       "iespecial1",
	TypeYAGUID:           "yaguid",
	TypeIESpecial2:       "iespecial2",
	TypeShare:            "share",
}

// String returns a short lowercase name for known tags and the hex value
// for anything else.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("0x%02x", uint8(t))
}

// ParseType maps a name produced by Type.String back to its tag.
func ParseType(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}

	return 0, false
}

func (t Type) isGUID() bool {
	return t == TypeGUID || t == TypeShellExt || t == TypeYAGUID
}

func (t Type) isDrive() bool {
	return t == TypeDrive || t == TypeDrive1 || t == TypeDrive2 || t == TypeDrive3
}

func (t Type) isFolder() bool {
	return t == TypeFolder || t == TypeFolder1
}

// hasFileNames reports whether the payload uses the file-record name layout.
func (t Type) hasFileNames() bool {
	return t.isFolder() || t == TypeValue || t == TypeIESpecial1 || t == TypeIESpecial2
}

func (t Type) isNet() bool {
	switch t {
	case TypeWorkgroup, TypeComputer, TypeNetProvider, TypeNetwork, TypeShare:
		return true
	}

	return false
}

// Attr holds file attribute bits. Records store the low 16 bits.
type Attr uint32

// File attribute bits.
const (
	AttrReadOnly   Attr = 0x0001
	AttrHidden     Attr = 0x0002
	AttrSystem     Attr = 0x0004
	AttrDirectory  Attr = 0x0010
	AttrArchive    Attr = 0x0020
	AttrNormal     Attr = 0x0080
	AttrCompressed Attr = 0x0800
)

// attrLetters is the display order used by AttributeString.
var attrLetters = []struct {
	bit    Attr
	letter byte
}{
	{AttrReadOnly, 'R'},
	{AttrHidden, 'H'},
	{AttrSystem, 'S'},
	{AttrArchive, 'A'},
	{AttrCompressed, 'C'},
}
