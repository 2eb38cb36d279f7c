package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/islandboy/idlist/internal/classreg"
	"github.com/islandboy/idlist/internal/fsmeta"
	"github.com/islandboy/idlist/internal/itemid"
)

// knownLists are the well-known folders accepted by "known:<name>".
var knownLists = map[string]func() *itemid.List{
	"desktop":       itemid.NewDesktop,
	"mycomputer":    itemid.NewMyComputer,
	"mydocuments":   itemid.NewMyDocuments,
	"internet":      itemid.NewInternet,
	"networkplaces": itemid.NewNetworkPlaces,
	"recyclebin":    itemid.NewRecycleBin,
	"controlpanel":  itemid.NewControlPanel,
	"printers":      itemid.NewPrinters,
}

const componentHelp = `Components:
  known:<name>        well-known folder (desktop, mycomputer, mydocuments,
                      internet, networkplaces, recyclebin, controlpanel,
                      printers) or any class name from the registry
  guid:<{GUID}>       class record for an arbitrary GUID
  drive:<letter>      drive root, e.g. drive:C
  file:<path>         file or folder record built from the local filesystem
  path:<path>         every component of the absolute path, the last one
                      with filesystem metadata
  net:<kind>:<name>   network record; kind is workgroup, computer,
                      netprovider, network or share`

// parseComponent builds the list for one component argument.
func parseComponent(comp string, reg *classreg.Registry) (*itemid.List, error) {
	kind, arg, ok := strings.Cut(comp, ":")
	if !ok || arg == "" {
		return nil, fmt.Errorf("component %q: expected <kind>:<value>", comp)
	}

	switch strings.ToLower(kind) {
	case "known":
		if ctor, ok := knownLists[strings.ToLower(arg)]; ok {
			return ctor(), nil
		}

		if reg != nil {
			if id, ok := reg.Lookup(arg); ok {
				return itemid.NewGUID(itemid.TypeGUID, id)
			}
		}

		return nil, fmt.Errorf("component %q: unknown folder %q", comp, arg)

	case "guid":
		l, err := itemid.NewGUIDFromString(arg)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", comp, err)
		}

		return l, nil

	case "drive":
		if len(arg) != 1 || !isASCIILetter(arg[0]) {
			return nil, fmt.Errorf("component %q: drive must be a single letter", comp)
		}

		return itemid.NewDrive(arg), nil

	case "file":
		l, err := fsmeta.NewRecord(arg)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", comp, err)
		}

		return l, nil

	case "path":
		l, err := fsmeta.PathList(arg)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", comp, err)
		}

		return l, nil

	case "net":
		typeName, name, ok := strings.Cut(arg, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("component %q: expected net:<kind>:<name>", comp)
		}

		t, ok := itemid.ParseType(strings.ToLower(typeName))
		if !ok {
			return nil, fmt.Errorf("component %q: unknown network kind %q", comp, typeName)
		}

		l, err := itemid.NewNet(t, name, "")
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", comp, err)
		}

		return l, nil

	default:
		return nil, fmt.Errorf("component %q: unknown kind %q", comp, kind)
	}
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// buildList combines the components left to right, starting from the root.
func buildList(comps []string, reg *classreg.Registry) (*itemid.List, error) {
	l := itemid.NewDesktop()

	for _, comp := range comps {
		next, err := parseComponent(comp, reg)
		if err != nil {
			return nil, err
		}

		l = itemid.Combine(l, next)
	}

	return l, nil
}

// encodeStream returns the stream encoding of l.
func encodeStream(l *itemid.List) ([]byte, error) {
	var buf bytes.Buffer
	if err := itemid.Write(&buf, l); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decodeStreams parses every list in data. Input that is entirely hex
// digits (ignoring whitespace) is hex-decoded first; anything else is taken
// as raw stream bytes. Absent lists appear as nil entries.
func decodeStreams(data []byte) ([]*itemid.List, error) {
	if compact := strings.Join(strings.Fields(string(data)), ""); isHex(compact) {
		raw, err := hex.DecodeString(compact)
		if err != nil {
			return nil, fmt.Errorf("decoding hex input: %w", err)
		}

		data = raw
	}

	if len(data) == 0 {
		return nil, errors.New("empty input")
	}

	r := bytes.NewReader(data)

	var lists []*itemid.List

	for r.Len() > 0 {
		l, err := itemid.Read(r)
		if err != nil {
			return nil, fmt.Errorf("list %d: %w", len(lists)+1, err)
		}

		lists = append(lists, l)
	}

	return lists, nil
}

func isHex(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}

	for i := range len(s) {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}

	return true
}

// readInput reads a whole input source: "-" is stdin, "@path" and any
// existing file name are read from disk, anything else is the literal text.
func readInput(arg string, stdin io.Reader) ([]byte, error) {
	switch {
	case arg == "-":
		return io.ReadAll(stdin)
	case strings.HasPrefix(arg, "@"):
		return os.ReadFile(arg[1:])
	}

	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		return os.ReadFile(arg)
	}

	return []byte(arg), nil
}

// readList reads exactly one present list from arg.
func readList(arg string, stdin io.Reader) (*itemid.List, error) {
	data, err := readInput(arg, stdin)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", arg, err)
	}

	lists, err := decodeStreams(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", arg, err)
	}

	if len(lists) != 1 || lists[0] == nil {
		return nil, fmt.Errorf("parsing %s: expected one identifier list, found %d", arg, countPresent(lists))
	}

	return lists[0], nil
}

func countPresent(lists []*itemid.List) int {
	n := 0

	for _, l := range lists {
		if l != nil {
			n++
		}
	}

	return n
}
