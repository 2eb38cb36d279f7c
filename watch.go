package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/islandboy/idlist/internal/changenotify"
	"github.com/islandboy/idlist/internal/fsmeta"
	"github.com/islandboy/idlist/internal/itemid"
	"github.com/islandboy/idlist/internal/mru"
)

// watchEventBuffer is the capacity of the channel between the watcher and
// the printer.
const watchEventBuffer = 64

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Stream filesystem changes as identifier lists",
		Long: `Watch a directory (not recursively) and print one line per change:
the kind, the path and the hex identifier of the entry.

With --mru, created and modified entries are also pushed into the MRU
store. Only one recording watcher may run per store; "idlist watch stop"
asks it to exit.`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().Bool("mru", false, "record created and modified entries in the MRU store")

	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the watcher recording into the MRU store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := mustCLIContext(cmd.Context())

			info, err := signalWatcher(cc.Cfg.StorePath, syscall.SIGTERM)
			if err != nil {
				return err
			}

			cc.Statusf("Sent stop signal to watcher PID %d (watching %s)\n", info.PID, info.Dir)

			return nil
		},
	})

	return cmd
}

// watchEvent is the JSON form of one change.
type watchEvent struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
	Item string `json:"item"`
}

func runWatch(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())
	record, _ := cmd.Flags().GetBool("mru")

	parent, err := fsmeta.DirList(args[0])
	if err != nil {
		return err
	}

	var store *mru.Store

	if record {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}

		lock, err := acquireWatchLock(cc.Cfg.StorePath, dir)
		if err != nil {
			return err
		}
		defer lock.Release()

		store, err = openStore(cmd.Context(), cc)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	ctx, stop := shutdownContext(cmd.Context(), cc.Logger)
	defer stop()
	events := make(chan changenotify.Event, watchEventBuffer)
	w := changenotify.New(cc.Logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(events)
		return w.Run(gctx, args[0], events)
	})

	g.Go(func() error {
		return consumeEvents(gctx, events, parent, store, cc, cmd.OutOrStdout())
	})

	cc.Statusf("Watching %s (Ctrl-C to stop)\n", args[0])

	return g.Wait()
}

// consumeEvents prints each event and, when store is set, records the full
// path (parent plus entry) of creations and writes. It returns when events
// is closed, so events already queued when ctx is canceled are still
// recorded.
func consumeEvents(
	ctx context.Context, events <-chan changenotify.Event, parent *itemid.List,
	store *mru.Store, cc *CLIContext, w io.Writer,
) error {
	// Events buffered before a shutdown signal are still recorded.
	storeCtx := context.WithoutCancel(ctx)

	for ev := range events {
		text, _ := ev.Item.MarshalText()

		if cc.Flags.JSON {
			if err := printJSON(w, watchEvent{Kind: ev.Kind.String(), Path: ev.Path, Item: string(text)}); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ev.Kind, ev.Path, text)
		}

		if store == nil || ev.Kind == changenotify.Removed {
			continue
		}

		if _, err := store.Push(storeCtx, itemid.Combine(parent, ev.Item)); err != nil {
			cc.Logger.Warn("recording change in mru store",
				slog.String("path", ev.Path),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}
