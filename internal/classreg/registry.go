// Package classreg maps class identifiers to display names and file
// extensions to type descriptions. A Registry starts from the built-in
// tables and is overlaid with the [class_names] and [file_types] tables of
// the configuration file.
package classreg

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/islandboy/idlist/internal/itemid"
)

// ErrUnknownClass is returned by ClassName for identifiers with no entry.
var ErrUnknownClass = errors.New("classreg: unknown class")

var builtinClasses = map[uuid.UUID]string{
	itemid.CLSIDShellDesktop:  "Desktop",
	itemid.CLSIDMyComputer:    "My Computer",
	itemid.CLSIDMyDocuments:   "My Documents",
	itemid.CLSIDInternet:      "Internet Explorer",
	itemid.CLSIDControlPanel:  "Control Panel",
	itemid.CLSIDPrinters:      "Printers",
	itemid.CLSIDNetworkPlaces: "My Network Places",
	itemid.CLSIDRecycleBin:    "Recycle Bin",
}

var builtinTypes = map[string]string{
	"txt":  "Text Document",
	"md":   "Markdown Document",
	"log":  "Log File",
	"ini":  "Configuration Settings",
	"exe":  "Application",
	"dll":  "Application Extension",
	"lnk":  "Shortcut",
	"zip":  "Compressed Folder",
	"bmp":  "Bitmap Image",
	"png":  "PNG Image",
	"jpg":  "JPEG Image",
	"htm":  "HTML Document",
	"html": "HTML Document",
}

// Entry is one class name, used when listing a registry.
type Entry struct {
	CLSID uuid.UUID
	Name  string
}

// Registry resolves class and file type names. The zero value is not
// usable; call New.
type Registry struct {
	classes map[uuid.UUID]string
	types   map[string]string
}

// New returns a registry holding the built-in tables overlaid with
// classNames (braced or bare GUID -> name) and fileTypes (extension ->
// description). Every unparsable GUID is reported.
func New(classNames, fileTypes map[string]string) (*Registry, error) {
	r := &Registry{
		classes: maps.Clone(builtinClasses),
		types:   maps.Clone(builtinTypes),
	}

	var errs []error

	for key, name := range classNames {
		id, err := itemid.ParseGUID(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("classreg: class_names: %w", err))
			continue
		}

		r.classes[id] = name
	}

	for ext, desc := range fileTypes {
		r.types[normalizeExt(ext)] = desc
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return r, nil
}

// ClassName implements itemid.NameResolver.
func (r *Registry) ClassName(clsid uuid.UUID) (string, error) {
	name, ok := r.classes[clsid]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownClass, itemid.FormatGUID(clsid))
	}

	return name, nil
}

// Describe implements itemid.TypeMapper. Extensions match case-insensitively.
func (r *Registry) Describe(ext string) (string, bool) {
	desc, ok := r.types[normalizeExt(ext)]
	return desc, ok
}

// Lookup finds a class by display name, ignoring case.
func (r *Registry) Lookup(name string) (uuid.UUID, bool) {
	for id, n := range r.classes {
		if strings.EqualFold(n, name) {
			return id, true
		}
	}

	return uuid.Nil, false
}

// Classes returns all class entries sorted by name.
func (r *Registry) Classes() []Entry {
	out := make([]Entry, 0, len(r.classes))
	for id, name := range r.classes {
		out = append(out, Entry{CLSID: id, Name: name})
	}

	slices.SortFunc(out, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})

	return out
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

var (
	_ itemid.NameResolver = (*Registry)(nil)
	_ itemid.TypeMapper   = (*Registry)(nil)
)
