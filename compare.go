package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/islandboy/idlist/internal/itemid"
)

// errUnrelated is returned by compare when neither list equals or contains
// the other. main turns it into exit status 1 without a message.
var errUnrelated = errors.New("lists are unrelated")

// Relations reported by compare.
const (
	relEqual           = "equal"
	relImmediateParent = "immediate parent"
	relParent          = "parent"
	relImmediateChild  = "immediate child"
	relChild           = "child"
	relUnrelated       = "unrelated"
)

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two identifier lists",
		Long: `Compare two identifier lists by their text projection and report whether
they are equal, whether one is a parent of the other, or neither. For a
parent relation the remainder of the longer list is printed as hex.

Each argument is hex text, a file name, "@file", or "-" for stdin.
Exits with status 1 when the lists are unrelated.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}
}

// compareResult is the JSON form of a comparison.
type compareResult struct {
	Relation  string `json:"relation"`
	Remainder string `json:"remainder,omitempty"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	a, err := readList(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	b, err := readList(args[1], cmd.InOrStdin())
	if err != nil {
		return err
	}

	res := relate(itemid.NewComparer(cc.Registry, cc.Logger), a, b)

	if cc.Flags.JSON {
		if err := printJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), res.Relation)

		if res.Remainder != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "remainder: %s\n", res.Remainder)
		}
	}

	if res.Relation == relUnrelated {
		return errUnrelated
	}

	return nil
}

// relate classifies b relative to a.
func relate(cmp *itemid.Comparer, a, b *itemid.List) compareResult {
	switch {
	case cmp.Equal(a, b):
		return compareResult{Relation: relEqual}
	case cmp.IsParent(a, b, false):
		rel := relParent
		if cmp.IsParent(a, b, true) {
			rel = relImmediateParent
		}

		return compareResult{Relation: rel, Remainder: remainderHex(cmp, a, b)}
	case cmp.IsParent(b, a, false):
		rel := relChild
		if cmp.IsParent(b, a, true) {
			rel = relImmediateChild
		}

		return compareResult{Relation: rel, Remainder: remainderHex(cmp, b, a)}
	default:
		return compareResult{Relation: relUnrelated}
	}
}

func remainderHex(cmp *itemid.Comparer, parent, child *itemid.List) string {
	r, ok := cmp.FindChild(parent, child)
	if !ok {
		return ""
	}

	text, _ := r.Tail().MarshalText()

	return string(text)
}
