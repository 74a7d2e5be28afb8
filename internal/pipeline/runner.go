// Package pipeline runs the gallery and collections updates: scan, render,
// splice. The two targets share no state and a failure in one never stops
// the other.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"git.home.luguber.info/inful/folio/internal/config"
	ferrors "git.home.luguber.info/inful/folio/internal/errors"
	"git.home.luguber.info/inful/folio/internal/logfields"
	"git.home.luguber.info/inful/folio/internal/markup"
	"git.home.luguber.info/inful/folio/internal/metrics"
	"git.home.luguber.info/inful/folio/internal/scan"
	"git.home.luguber.info/inful/folio/internal/splice"
)

const rule = "=================================================="

// Runner sequences both targets for one configuration.
type Runner struct {
	cfg      *config.Config
	scanner  *scan.Scanner
	out      io.Writer
	recorder metrics.Recorder
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where progress lines are printed (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// NewRunner creates a Runner for cfg.
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg: cfg,
		scanner: scan.New(scan.Options{
			Extensions:      cfg.Extensions,
			IgnoreHidden:    cfg.IgnoreHidden,
			DescriptionFile: cfg.DescriptionFile,
		}),
		out:      os.Stdout,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run updates the gallery document, then the collections document.
func (r *Runner) Run(ctx context.Context) *Report {
	start := time.Now()
	root := r.cfg.RootPath()

	r.printf("Portfolio Content Updater\n%s\n", rule)
	r.printf("Scanning art folder: %s\n", root)
	slog.Info("Starting portfolio update", logfields.Root(root))

	report := &Report{}

	r.printf("\nUPDATING GALLERY...\n")
	report.Gallery = r.guard(ctx, TargetGallery, r.cfg.Gallery, r.Gallery)

	r.printf("\nUPDATING COLLECTIONS...\n")
	report.Collections = r.guard(ctx, TargetCollections, r.cfg.Collections, r.Collections)

	report.Duration = time.Since(start)
	r.recorder.ObserveRunDuration(report.Duration)
	for _, res := range report.Results() {
		r.recorder.IncUpdateResult(res.Target, string(res.Status))
	}

	r.printf("\n%s\n", rule)
	if report.Failed() {
		r.printf("Update finished with errors\n")
	} else {
		r.printf("Update complete!\n")
	}
	slog.Info("Portfolio update finished",
		logfields.Status(overall(report)),
		logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	return report
}

// guard skips a target when ctx is already done.
func (r *Runner) guard(ctx context.Context, name string, t config.Target, run func() TargetResult) TargetResult {
	if err := ctx.Err(); err != nil {
		return TargetResult{Target: name, Document: r.cfg.Resolve(t.Document), Status: StatusFailed, Err: err}
	}
	return run()
}

// Gallery scans every image under the root and rewrites the gallery region.
func (r *Runner) Gallery() TargetResult {
	doc := r.cfg.Resolve(r.cfg.Gallery.Document)
	res := TargetResult{Target: TargetGallery, Document: doc}

	images, err := r.scanner.Images(r.cfg.RootPath(), doc)
	if err != nil {
		return r.fail(res, ferrors.ScanFailed(r.cfg.RootPath(), err), "Failed to scan images for gallery")
	}
	res.Images = len(images)
	r.recorder.SetImagesFound(TargetGallery, len(images))

	if len(images) == 0 {
		r.printf("No images found for gallery!\n")
		return r.maybeClear(res, r.cfg.Gallery)
	}
	r.printf("Found %d total images\n", len(images))

	r.printf("Generating gallery HTML...\n")
	inner := markup.Gallery(images)

	if err := r.update(doc, inner, r.cfg.Gallery); err != nil {
		return r.fail(res, ferrors.UpdateFailed(TargetGallery, err), "Failed to update gallery page")
	}
	res.Status = StatusUpdated
	r.printf("Gallery updated with %d images\n", len(images))
	slog.Info("Gallery updated", logfields.Document(doc), logfields.Count(len(images)))
	return res
}

// Collections groups images by top-level subdirectory and rewrites the
// collections region.
func (r *Runner) Collections() TargetResult {
	doc := r.cfg.Resolve(r.cfg.Collections.Document)
	res := TargetResult{Target: TargetCollections, Document: doc}

	cols, err := r.scanner.Collections(r.cfg.RootPath(), doc)
	if err != nil {
		return r.fail(res, ferrors.ScanFailed(r.cfg.RootPath(), err), "Failed to scan collections")
	}
	res.Collections = len(cols)
	res.Images = cols.TotalImages()
	r.recorder.SetCollectionsFound(len(cols))
	r.recorder.SetImagesFound(TargetCollections, res.Images)

	if len(cols) == 0 {
		r.printf("No collections found (no subfolders with images)\n")
		return r.maybeClear(res, r.cfg.Collections)
	}
	r.printf("Found %d collections with %d images:\n", len(cols), res.Images)
	for _, c := range cols {
		r.printf("   • %s: %d images\n", c.Name, len(c.Images))
	}

	r.printf("Generating collections HTML...\n")
	inner, err := markup.Collections(cols)
	if err != nil {
		return r.fail(res, ferrors.UpdateFailed(TargetCollections, err), "Failed to generate collections HTML")
	}

	if err := r.update(doc, inner, r.cfg.Collections); err != nil {
		return r.fail(res, ferrors.UpdateFailed(TargetCollections, err), "Failed to update collections page")
	}
	res.Status = StatusUpdated
	r.printf("Collections updated with %d collections\n", len(cols))
	slog.Info("Collections updated", logfields.Document(doc), logfields.Count(len(cols)))
	return res
}

func (r *Runner) update(doc, inner string, t config.Target) error {
	r.printf("Updating %s...\n", doc)
	err := splice.UpdateFile(doc, inner, splice.Markers{Start: t.StartMarker, End: t.EndMarker}, r.cfg.Indent)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, splice.ErrDocumentNotFound):
		r.printf("Error: File '%s' does not exist!\n", doc)
	case errors.Is(err, splice.ErrStartMarkerMissing), errors.Is(err, splice.ErrEndMarkerMissing),
		errors.Is(err, splice.ErrMarkersOutOfOrder):
		r.printf("Error: Could not find markers in %s\n", doc)
		r.printf("Make sure the file contains both, in this order:\n  %s\n  %s\n", t.StartMarker, t.EndMarker)
	}
	return err
}

// maybeClear empties the region when configured to; otherwise the document is left alone.
func (r *Runner) maybeClear(res TargetResult, t config.Target) TargetResult {
	if !r.cfg.ClearWhenEmpty {
		res.Status = StatusSkipped
		slog.Warn("Nothing to render; document left unchanged", logfields.Target(res.Target), logfields.Document(res.Document))
		return res
	}
	if err := r.update(res.Document, "", t); err != nil {
		return r.fail(res, ferrors.UpdateFailed(res.Target, err), "Failed to clear "+res.Target+" page")
	}
	res.Status = StatusUpdated
	r.printf("Cleared %s region\n", res.Target)
	return res
}

func (r *Runner) fail(res TargetResult, err error, msg string) TargetResult {
	res.Status = StatusFailed
	res.Err = err
	r.printf("%s\n", msg)
	slog.Error(msg, logfields.Target(res.Target), logfields.Document(res.Document), logfields.Error(err))
	return res
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func overall(report *Report) string {
	if report.Failed() {
		return string(StatusFailed)
	}
	statuses := make([]string, 0, 2)
	for _, res := range report.Results() {
		statuses = append(statuses, res.Target+"="+string(res.Status))
	}
	return strings.Join(statuses, ",")
}
