package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/islandboy/idlist/internal/itemid"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file|hex|-]",
		Short: "Decode identifier list streams and print their records",
		Long: `Decode one or more identifier list streams and print each record with its
type, name, short name, size, date and attributes.

Input is read from stdin by default. Hex text and raw stream bytes are both
accepted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDump,
	}
}

// dumpRecord is the JSON form of one record.
type dumpRecord struct {
	Index      int        `json:"index"`
	Type       string     `json:"type"`
	Length     int        `json:"length"`
	Text       string     `json:"text"`
	ShortName  string     `json:"short_name,omitempty"`
	GUID       string     `json:"guid,omitempty"`
	Size       *uint32    `json:"size,omitempty"`
	Modified   *time.Time `json:"modified,omitempty"`
	Attributes string     `json:"attributes,omitempty"`
	WideName   string     `json:"wide_name,omitempty"`
	Created    *time.Time `json:"created,omitempty"`
	Accessed   *time.Time `json:"accessed,omitempty"`
}

// dumpList is the JSON form of one list. Absent lists have Absent set.
type dumpList struct {
	Absent   bool         `json:"absent,omitempty"`
	Size     int          `json:"size"`
	Path     string       `json:"path,omitempty"`
	TypeDesc string       `json:"type_description,omitempty"`
	Hex      string       `json:"hex,omitempty"`
	Records  []dumpRecord `json:"records"`
}

func runDump(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	src := "-"
	if len(args) == 1 {
		src = args[0]
	}

	data, err := readInput(src, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	lists, err := decodeStreams(data)
	if err != nil {
		return err
	}

	cmp := itemid.NewComparer(cc.Registry, cc.Logger)

	out := make([]dumpList, 0, len(lists))
	for _, l := range lists {
		out = append(out, describeList(l, cmp, cc))
	}

	if cc.Flags.JSON {
		return printJSON(cmd.OutOrStdout(), out)
	}

	for i, d := range out {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}

		printDumpList(cmd.OutOrStdout(), i+1, d, cc.dateLayout())
	}

	return nil
}

func describeList(l *itemid.List, cmp *itemid.Comparer, cc *CLIContext) dumpList {
	if l == nil {
		return dumpList{Absent: true, Records: []dumpRecord{}}
	}

	text, _ := l.MarshalText()

	d := dumpList{
		Size:     l.Size(),
		Path:     l.String(),
		TypeDesc: itemid.TypeDescription(l, cc.Registry),
		Hex:      string(text),
		Records:  make([]dumpRecord, 0, l.Count()),
	}

	i := 0
	for r := range l.Records() {
		d.Records = append(d.Records, describeRecord(i, r, cmp))
		i++
	}

	return d
}

func describeRecord(i int, r itemid.Record, cmp *itemid.Comparer) dumpRecord {
	t, _ := r.Type()

	rec := dumpRecord{
		Index:      i,
		Type:       t.String(),
		Length:     r.Len(),
		Text:       cmp.Text(r),
		Attributes: itemid.AttributeString(r),
	}

	if short, ok := r.ShortName(); ok {
		rec.ShortName = short
	}

	if id, ok := r.GUID(); ok {
		rec.GUID = itemid.FormatGUID(id)
	}

	if size, ok := r.FileSize(); ok && r.IsValue() {
		rec.Size = &size
	}

	if mod, ok := r.ModTime(); ok {
		rec.Modified = &mod
	}

	if ext, ok := r.Extended(); ok {
		rec.WideName = ext.Name
		rec.Created = timePtr(ext.Created)
		rec.Accessed = timePtr(ext.Accessed)
	}

	return rec
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}

func printDumpList(w io.Writer, n int, d dumpList, layout string) {
	if d.Absent {
		fmt.Fprintf(w, "list %d: absent\n", n)
		return
	}

	fmt.Fprintf(w, "list %d: %d bytes, %s\n", n, d.Size, d.Path)

	if len(d.Records) == 0 {
		fmt.Fprintln(w, "(desktop root)")
		return
	}

	headers := []string{"#", "TYPE", "NAME", "SHORT", "SIZE", "MODIFIED", "ATTR"}
	rows := make([][]string, 0, len(d.Records))

	for _, r := range d.Records {
		name := r.Text
		if r.WideName != "" {
			name = r.WideName
		}

		size := ""
		if r.Size != nil {
			size = strconv.FormatUint(uint64(*r.Size), 10)
		}

		modified := ""
		if r.Modified != nil {
			modified = r.Modified.Local().Format(layout)
		}

		rows = append(rows, []string{
			strconv.Itoa(r.Index), r.Type, name, r.ShortName, size, modified, r.Attributes,
		})
	}

	printTable(w, headers, rows)

	if d.TypeDesc != "" {
		fmt.Fprintf(w, "type: %s\n", d.TypeDesc)
	}
}
