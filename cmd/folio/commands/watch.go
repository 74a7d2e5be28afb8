package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/folio/internal/config"
	ferrors "git.home.luguber.info/inful/folio/internal/errors"
	"git.home.luguber.info/inful/folio/internal/logfields"
	"git.home.luguber.info/inful/folio/internal/pipeline"
	"git.home.luguber.info/inful/folio/internal/scan"
	"git.home.luguber.info/inful/folio/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Root     string        `help:"Image root directory, overriding the configuration"`
	Debounce time.Duration `help:"Quiet period before an update runs (overrides watch.debounce)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, w.Root)
	if err != nil {
		return err
	}
	if w.Debounce > 0 {
		cfg.Watch.Debounce = w.Debounce
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunWatch(ctx, cfg)
}

// RunWatch updates once, then again after every settled change under the
// image root, until ctx is cancelled.
func RunWatch(ctx context.Context, cfg *config.Config) error {
	runner := pipeline.NewRunner(cfg)
	rebuild := func(ctx context.Context) {
		if err := runner.Run(ctx).Err(); err != nil {
			slog.Warn("Update finished with errors", logfields.Error(err))
		}
	}
	rebuild(ctx)

	sc := scan.New(scan.Options{Extensions: cfg.Extensions})
	match := func(path string) bool {
		return sc.IsImage(path) || filepath.Base(path) == cfg.DescriptionFile
	}

	fmt.Fprintf(os.Stdout, "\nWatching %s for changes (Ctrl+C to stop)\n", cfg.RootPath())
	w := watch.New(cfg.RootPath(), cfg.Watch.Debounce, rebuild, watch.WithMatch(match), watch.WithIgnoreHidden(cfg.IgnoreHidden))
	if err := w.Run(ctx); err != nil {
		return ferrors.Wrap(err, ferrors.CategoryRuntime, ferrors.SeverityFatal, "watch failed").
			WithContext("root", cfg.RootPath())
	}
	return nil
}
