package metrics

import "time"

// Recorder defines observability hooks for an update run.
type Recorder interface {
	SetImagesFound(target string, n int)
	SetCollectionsFound(n int)
	IncUpdateResult(target, status string) // status: updated|skipped|failed
	ObserveRunDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) SetImagesFound(string, int)       {}
func (NoopRecorder) SetCollectionsFound(int)          {}
func (NoopRecorder) IncUpdateResult(string, string)   {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
