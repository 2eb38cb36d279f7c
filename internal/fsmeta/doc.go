// Package fsmeta builds item identifiers from the local filesystem: it maps
// os.FileInfo onto record metadata, generates 8.3 short names, lists
// directories concurrently, and turns absolute paths into complex lists.
package fsmeta
