package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/folio/internal/config"
	"git.home.luguber.info/inful/folio/internal/logfields"
	"git.home.luguber.info/inful/folio/internal/metrics"
	"git.home.luguber.info/inful/folio/internal/pipeline"
)

// UpdateCmd implements the 'update' command.
type UpdateCmd struct {
	Root        string `help:"Image root directory, overriding the configuration"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus textfile metrics to this path after the run"`
}

func (u *UpdateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, u.Root)
	if err != nil {
		return err
	}
	return RunUpdate(context.Background(), cfg, os.Stdout, u.MetricsFile)
}

// RunUpdate performs one update of both documents. The returned error is
// non-nil when either document failed.
func RunUpdate(ctx context.Context, cfg *config.Config, out io.Writer, metricsFile string) error {
	opts := []pipeline.Option{pipeline.WithOutput(out)}

	var recorder *metrics.PrometheusRecorder
	if metricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		opts = append(opts, pipeline.WithRecorder(recorder))
	}

	report := pipeline.NewRunner(cfg, opts...).Run(ctx)

	if recorder != nil {
		if err := recorder.WriteTextfile(metricsFile); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(metricsFile), logfields.Error(err))
		}
	}
	return report.Err()
}
