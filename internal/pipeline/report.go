package pipeline

import (
	"errors"
	"time"

	ferrors "git.home.luguber.info/inful/folio/internal/errors"
)

// Target names used in reports, logs and metrics.
const (
	TargetGallery     = "gallery"
	TargetCollections = "collections"
)

// Status is the outcome of one target's update.
type Status string

const (
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped" // nothing found, document left as is
	StatusFailed  Status = "failed"
)

// TargetResult describes what one pipeline found and whether its document changed.
type TargetResult struct {
	Target      string
	Document    string
	Images      int
	Collections int
	Status      Status
	Err         error
}

// Failed reports whether the target's update failed.
func (t TargetResult) Failed() bool { return t.Status == StatusFailed }

// Report collects both targets of a run.
type Report struct {
	Gallery     TargetResult
	Collections TargetResult
	Duration    time.Duration
}

// Results returns the target results in run order.
func (r *Report) Results() []TargetResult {
	return []TargetResult{r.Gallery, r.Collections}
}

// Failed reports whether any target failed.
func (r *Report) Failed() bool {
	return r.Gallery.Failed() || r.Collections.Failed()
}

// Err joins the classified errors of failed targets, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results() {
		if !res.Failed() {
			continue
		}
		if _, ok := ferrors.As(res.Err); ok {
			errs = append(errs, res.Err)
			continue
		}
		errs = append(errs, ferrors.UpdateFailed(res.Target, res.Err))
	}
	return errors.Join(errs...)
}
