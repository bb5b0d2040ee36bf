package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"cutboard/internal/board"
	"cutboard/internal/decoder"
	"cutboard/internal/logging"
	"cutboard/internal/sbfile"
	"cutboard/internal/thumbdisk"
	"cutboard/internal/vthumb"
)

func newThumbsCommand(ctx *commandContext) *cobra.Command {
	var watch bool
	var noPrune bool

	cmd := &cobra.Command{
		Use:   "thumbs <storyboard>",
		Short: "Prefetch movie thumbnails for a storyboard file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Level:       cfg.Logging.Level,
				Format:      cfg.Logging.Format,
				OutputPaths: []string{"stderr"},
			})
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "thumbs")

			file, err := ctx.loadStoryboard(args[0])
			if err != nil {
				return err
			}

			store, err := thumbdisk.Open(cfg.Paths.ThumbCacheDB)
			if err != nil {
				return fmt.Errorf("open thumbnail cache: %w", err)
			}
			defer store.Close()

			dec := decoder.NewFFmpeg(cfg.Thumbnails.FFmpegBinary, cfg.Thumbnails.FFprobeBinary)
			cache := vthumb.NewCache(dec, func() []*board.Document {
				return []*board.Document{file.Doc}
			}, cfg.Thumbnails.Width, cfg.Thumbnails.Height, logger)

			out := cmd.OutOrStdout()
			cache.SetProgressFunc(func(p vthumb.Progress) {
				fmt.Fprintf(out, "\r%d/%d thumbnails (%d cached)", p.Index, p.Total, p.Hits)
				if p.Index == p.Total {
					fmt.Fprintln(out)
				}
			})

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runPass := func() error {
				cache.StartPrefetch()
				if err := cache.Run(runCtx); err != nil {
					return err
				}
				return persistEntries(runCtx, store, cache, file.Doc, cfg.Thumbnails.Width, cfg.Thumbnails.Height)
			}
			if err := runPass(); err != nil {
				return err
			}

			if !noPrune {
				maxAge := time.Duration(cfg.Thumbnails.MaxAgeDays) * 24 * time.Hour
				maxBytes := int64(cfg.Thumbnails.MaxMiB) * 1 << 20
				removed, err := store.Prune(runCtx, maxAge, maxBytes)
				if err != nil {
					return fmt.Errorf("prune thumbnail cache: %w", err)
				}
				if removed > 0 {
					fmt.Fprintf(out, "pruned %d stale thumbnails\n", removed)
				}
			}

			if !watch {
				return nil
			}
			return watchStoryboard(runCtx, cmd, ctx, args[0], file, cache, runPass)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and refresh when the storyboard file changes")
	cmd.Flags().BoolVar(&noPrune, "no-prune", false, "Skip cache pruning after the pass")
	return cmd
}

// watchStoryboard reruns the prefetch pass whenever the storyboard file is
// rewritten. The parent directory is watched because editors typically
// replace the file via rename.
func watchStoryboard(runCtx context.Context, cmd *cobra.Command, ctx *commandContext, path string, file *sbfile.File, cache *vthumb.Cache, runPass func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "watching %s\n", target)

	for {
		select {
		case <-runCtx.Done():
			return runCtx.Err()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}

			reloaded, err := ctx.loadStoryboard(path)
			if err != nil {
				fmt.Fprintf(out, "reload failed: %v\n", err)
				continue
			}
			file.Doc = reloaded.Doc
			if err := runPass(); err != nil {
				return err
			}
		}
	}
}

func persistEntries(ctx context.Context, store *thumbdisk.Store, cache *vthumb.Cache, doc *board.Document, width, height int) error {
	for _, entry := range cache.Entries() {
		if entry.Placeholder {
			continue
		}
		info, err := os.Stat(entry.Key.Path)
		if err != nil {
			continue
		}
		if err := store.StoreThumb(ctx, entry.Key.Path, info.ModTime(), entry.Image); err != nil {
			return fmt.Errorf("store thumbnail for %s: %w", entry.Key.Path, err)
		}
	}

	// Color and black clips have no backing file; their tiles are stored
	// under a synthetic resource key with a fixed mtime.
	for _, section := range doc.Sections {
		for _, clip := range section.Clips {
			if !clip.Active() {
				continue
			}
			if clip.Type != board.RecordColor && clip.Type != board.RecordBlack {
				continue
			}
			var r, g, b uint8
			if clip.Color != nil {
				r, g, b = clip.Color.R, clip.Color.G, clip.Color.B
			}
			key := fmt.Sprintf("color:%02x%02x%02x", r, g, b)
			tile := vthumb.ColorTile(width, height, r, g, b)
			if err := store.StoreThumb(ctx, key, time.Unix(0, 0), tile); err != nil {
				return fmt.Errorf("store tile for %s: %w", key, err)
			}
		}
	}
	return nil
}
