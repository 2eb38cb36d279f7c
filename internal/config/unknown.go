package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// maxSuggestDistance bounds the edit distance of "did you mean" hints.
const maxSuggestDistance = 3

// scalarKeys and tableKeys are the accepted top-level keys and table names,
// read from the toml tags of Config so new fields need no registration.
var scalarKeys, tableKeys = configKeys(reflect.TypeFor[Config]())

func configKeys(t reflect.Type) (scalars, tables []string) {
	for i := range t.NumField() {
		f := t.Field(i)

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			s, tb := configKeys(f.Type)
			scalars = append(scalars, s...)
			tables = append(tables, tb...)

			continue
		}

		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			continue
		}

		if f.Type.Kind() == reflect.Map {
			tables = append(tables, name)
		} else {
			scalars = append(scalars, name)
		}
	}

	slices.Sort(scalars)
	slices.Sort(tables)

	return scalars, tables
}

// checkUnknownKeys reports every key the decoder did not consume, once per
// top-level name. Entries inside a known table are always accepted.
func checkUnknownKeys(md *toml.MetaData) error {
	var errs []error

	seen := make(map[string]bool)

	for _, key := range md.Undecoded() {
		top := key[0]
		if seen[top] || slices.Contains(tableKeys, top) {
			continue
		}

		seen[top] = true

		errs = append(errs, unknownKeyError(top, md.Type(top) == "Hash"))
	}

	return errors.Join(errs...)
}

// unknownKeyError describes an unknown key or table, suggesting the nearest
// known name of the same kind.
func unknownKeyError(name string, isTable bool) error {
	kind, candidates := "key", scalarKeys
	if isTable {
		kind, candidates = "table", tableKeys
	}

	if s := closestMatch(name, candidates); s != "" {
		return fmt.Errorf("unknown config %s %q (did you mean %q?)", kind, name, s)
	}

	return fmt.Errorf("unknown config %s %q", kind, name)
}

// closestMatch returns the candidate nearest to name, or "" when none is
// within maxSuggestDistance. Ties go to the earlier candidate.
func closestMatch(name string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance+1

	for _, c := range candidates {
		if d := levenshtein(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best
}

// levenshtein is the byte-wise edit distance between a and b.
func levenshtein(a, b string) int {
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(b); j++ {
			up := row[j]

			if a[i-1] == b[j-1] {
				row[j] = diag
			} else {
				row[j] = 1 + min(diag, up, row[j-1])
			}

			diag = up
		}
	}

	return row[len(b)]
}
