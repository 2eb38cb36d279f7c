package itemid

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// TypeMapper maps a file extension (without the dot) to a type description.
type TypeMapper interface {
	Describe(ext string) (string, bool)
}

// folderTypeName is the type description of everything that is not a file.
const folderTypeName = "Folder"

// SizeString formats the size of a Value record in kilobytes, rounded up,
// with thousands separators ("1,234 KB"). Other records yield "".
func SizeString(r Record) string {
	if !r.IsValue() {
		return ""
	}

	size, _ := r.FileSize()
	kb := (int64(size) + 1023) / 1024

	return humanize.Comma(kb) + " KB"
}

// DateString formats the last-write time of a Folder or Value record in the
// local time zone using layout. Records without a valid stamp yield "".
func DateString(r Record, layout string) string {
	t, ok := r.ModTime()
	if !ok {
		return ""
	}

	return t.Local().Format(layout)
}

// AttributeString returns the attribute letters of a Folder or Value record
// in RHSAC order, e.g. "RA".
func AttributeString(r Record) string {
	attrs, ok := r.Attributes()
	if !ok {
		return ""
	}

	var sb strings.Builder
	for _, a := range attrLetters {
		if attrs&a.bit != 0 {
			sb.WriteByte(a.letter)
		}
	}

	return sb.String()
}

// Extension returns the extension (without the dot) of the last record of
// l when that record is a file. Folders and extension-less names yield "".
func Extension(l *List) string {
	last, ok := l.Last()
	if !ok || !last.IsValue() {
		return ""
	}

	name, ok := last.Name()
	if !ok {
		return ""
	}

	return findExtension(name)
}

// findExtension returns the text after the last dot of the final path
// component. A space or backslash after the dot cancels it.
func findExtension(name string) string {
	dot := -1

	for i := range len(name) {
		switch name[i] {
		case '.':
			dot = i
		case ' ', '\\':
			dot = -1
		}
	}

	if dot < 0 {
		return ""
	}

	return name[dot+1:]
}

// TypeDescription describes the last record of l: "Folder" for anything but
// a file, the mapped description for a known extension, "<ext>-file"
// otherwise, and "" for a file without an extension.
func TypeDescription(l *List, types TypeMapper) string {
	last, ok := l.Last()
	if !ok || !last.IsValue() {
		return folderTypeName
	}

	ext := Extension(l)
	if ext == "" {
		return ""
	}

	if types != nil {
		if desc, ok := types.Describe(ext); ok {
			return desc
		}
	}

	return ext + "-file"
}
