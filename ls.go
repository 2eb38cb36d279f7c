package main

import (
	"github.com/spf13/cobra"

	"github.com/islandboy/idlist/internal/fsmeta"
	"github.com/islandboy/idlist/internal/itemid"
)

func newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List a directory as identifier records",
		Long: `Build one simple identifier list per directory entry and print the
listing through the record display helpers: name, size, type description,
modification date, attributes and the generated 8.3 alias.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLs,
	}

	cmd.Flags().Int("workers", fsmeta.DefaultWorkers, "concurrent stat calls")
	cmd.Flags().Bool("ids", false, "include each entry's identifier as hex")

	return cmd
}

// lsEntry is the JSON form of one listed entry.
type lsEntry struct {
	Name       string `json:"name"`
	ShortName  string `json:"short_name,omitempty"`
	Size       string `json:"size,omitempty"`
	Type       string `json:"type"`
	Modified   string `json:"modified,omitempty"`
	Attributes string `json:"attributes,omitempty"`
	ID         string `json:"id,omitempty"`
}

func runLs(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	workers, _ := cmd.Flags().GetInt("workers")
	withIDs, _ := cmd.Flags().GetBool("ids")

	lists, err := fsmeta.ReadDir(cmd.Context(), dir, workers, cc.Logger)
	if err != nil {
		return err
	}

	cmp := itemid.NewComparer(cc.Registry, cc.Logger)
	entries := make([]lsEntry, 0, len(lists))

	for _, l := range lists {
		r, ok := l.First()
		if !ok {
			continue
		}

		e := lsEntry{
			Name:       cmp.Text(r),
			Size:       itemid.SizeString(r),
			Type:       itemid.TypeDescription(l, cc.Registry),
			Modified:   itemid.DateString(r, cc.dateLayout()),
			Attributes: itemid.AttributeString(r),
		}

		if ext, ok := r.Extended(); ok {
			e.Name = ext.Name
		}

		if short, ok := r.ShortName(); ok {
			e.ShortName = short
		}

		if withIDs {
			text, _ := l.MarshalText()
			e.ID = string(text)
		}

		entries = append(entries, e)
	}

	if cc.Flags.JSON {
		return printJSON(cmd.OutOrStdout(), entries)
	}

	if len(entries) == 0 {
		cc.Statusf("%s is empty\n", dir)
		return nil
	}

	headers := []string{"NAME", "SIZE", "TYPE", "MODIFIED", "ATTR", "SHORT"}
	if withIDs {
		headers = append(headers, "ID")
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{e.Name, e.Size, e.Type, e.Modified, e.Attributes, e.ShortName}
		if withIDs {
			row = append(row, e.ID)
		}

		rows = append(rows, row)
	}

	printTable(cmd.OutOrStdout(), headers, rows)

	cc.Statusf("%d entries\n", len(entries))

	return nil
}
