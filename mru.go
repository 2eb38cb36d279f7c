package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/islandboy/idlist/internal/itemid"
	"github.com/islandboy/idlist/internal/mru"
)

// storeDirPermissions is the permission mode for the store directory.
const storeDirPermissions = 0o755

func newMRUCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mru",
		Short: "Manage the most-recently-used identifier store",
	}

	cmd.AddCommand(newMRUPushCmd())
	cmd.AddCommand(newMRUListCmd())
	cmd.AddCommand(newMRUShowCmd())
	cmd.AddCommand(newMRURmCmd())
	cmd.AddCommand(newMRUPruneCmd())
	cmd.AddCommand(newMRUExportCmd())
	cmd.AddCommand(newMRUImportCmd())

	return cmd
}

// openStore opens the configured MRU store, creating its directory.
func openStore(ctx context.Context, cc *CLIContext) (*mru.Store, error) {
	path := cc.Cfg.StorePath

	if err := os.MkdirAll(filepath.Dir(path), storeDirPermissions); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	return mru.Open(ctx, path, mru.Options{
		MaxEntries: cc.Cfg.MRUMaxEntries,
		Names:      cc.Registry,
		Logger:     cc.Logger,
	})
}

// withStore opens the store, runs fn, and closes the store, reporting the
// first error.
func withStore(cmd *cobra.Command, fn func(cc *CLIContext, s *mru.Store) error) (err error) {
	cc := mustCLIContext(cmd.Context())

	s, err := openStore(cmd.Context(), cc)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return fn(cc, s)
}

func newMRUPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <component>...",
		Short: "Record a use of an identifier list",
		Long: `Build an identifier list from components (see "idlist encode --help") or
read one with --from, and record a use of it. Lists with the same text
projection share one entry.`,
		RunE: runMRUPush,
	}

	cmd.Flags().String("from", "", `read the list from hex text, a file, or "-"`)

	return cmd
}

func runMRUPush(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")

	return withStore(cmd, func(cc *CLIContext, s *mru.Store) error {
		if from != "" && len(args) > 0 {
			return fmt.Errorf("--from cannot be combined with components")
		}

		var (
			l   *itemid.List
			err error
		)

		if from != "" {
			l, err = readList(from, cmd.InOrStdin())
		} else {
			l, err = buildList(args, cc.Registry)
		}

		if err != nil {
			return err
		}

		e, err := s.Push(cmd.Context(), l)
		if err != nil {
			return err
		}

		if cc.Flags.JSON {
			return printJSON(cmd.OutOrStdout(), toMRUJSON(e))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (uses: %d)\n", e.ID, e.Display, e.Uses)

		return nil
	})
}

// mruJSON is the JSON form of an entry.
type mruJSON struct {
	ID      string    `json:"id"`
	Display string    `json:"display"`
	Uses    int       `json:"uses"`
	AddedAt time.Time `json:"added_at"`
	UsedAt  time.Time `json:"used_at"`
	Item    string    `json:"item"`
}

func toMRUJSON(e mru.Entry) mruJSON {
	text, _ := e.Item.MarshalText()

	return mruJSON{
		ID:      e.ID.String(),
		Display: e.Display,
		Uses:    e.Uses,
		AddedAt: e.AddedAt,
		UsedAt:  e.UsedAt,
		Item:    string(text),
	}
}

func newMRUListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entries, most recently used first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(cc *CLIContext, s *mru.Store) error {
				entries, err := s.List(cmd.Context())
				if err != nil {
					return err
				}

				if cc.Flags.JSON {
					out := make([]mruJSON, 0, len(entries))
					for _, e := range entries {
						out = append(out, toMRUJSON(e))
					}

					return printJSON(cmd.OutOrStdout(), out)
				}

				if len(entries) == 0 {
					cc.Statusf("No entries.\n")
					return nil
				}

				printMRUTable(cmd.OutOrStdout(), entries, cc.dateLayout(), time.Now())

				return nil
			})
		},
	}
}

func printMRUTable(w io.Writer, entries []mru.Entry, layout string, now time.Time) {
	headers := []string{"ID", "USES", "LAST USED", "PATH"}
	rows := make([][]string, 0, len(entries))

	for _, e := range entries {
		rows = append(rows, []string{
			e.ID.String(),
			strconv.Itoa(e.Uses),
			formatAge(e.UsedAt, layout, now),
			e.Display,
		})
	}

	printTable(w, headers, rows)
}

func newMRUShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the stream encoding of an entry as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(cc *CLIContext, s *mru.Store) error {
				e, err := s.Get(cmd.Context(), id)
				if err != nil {
					return err
				}

				if cc.Flags.JSON {
					return printJSON(cmd.OutOrStdout(), toMRUJSON(e))
				}

				data, err := encodeStream(e.Item)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))

				return nil
			})
		},
	}
}

func newMRURmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(cc *CLIContext, s *mru.Store) error {
				if err := s.Remove(cmd.Context(), id); err != nil {
					return err
				}

				cc.Statusf("Removed %s\n", id)

				return nil
			})
		},
	}
}

func newMRUPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Drop entries beyond mru_max_entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(cc *CLIContext, s *mru.Store) error {
				n, err := s.Prune(cmd.Context())
				if err != nil {
					return err
				}

				cc.Statusf("Pruned %d entries\n", n)

				return nil
			})
		},
	}
}

func newMRUExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all entries as a CBOR document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(cc *CLIContext, s *mru.Store) error {
				if len(args) == 0 || args[0] == "-" {
					return s.Export(cmd.Context(), cmd.OutOrStdout())
				}

				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("creating %s: %w", args[0], err)
				}

				if err := s.Export(cmd.Context(), f); err != nil {
					f.Close()
					return err
				}

				if err := f.Close(); err != nil {
					return fmt.Errorf("closing %s: %w", args[0], err)
				}

				cc.Statusf("Exported to %s\n", args[0])

				return nil
			})
		},
	}
}

func newMRUImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Merge entries from a CBOR export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(cc *CLIContext, s *mru.Store) error {
				var r io.Reader = cmd.InOrStdin()

				if args[0] != "-" {
					f, err := os.Open(args[0])
					if err != nil {
						return fmt.Errorf("opening %s: %w", args[0], err)
					}
					defer f.Close()

					r = f
				}

				n, err := s.Import(cmd.Context(), r)
				if err != nil {
					return err
				}

				cc.Statusf("Imported %d entries\n", n)

				return nil
			})
		},
	}
}

func parseEntryID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid entry ID %q: %w", s, err)
	}

	return id, nil
}
