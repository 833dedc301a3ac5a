package metrics

import "time"

// LinkStatus mirrors the validation status label of a checked link.
type LinkStatus string

const (
	LinkValid    LinkStatus = "valid"
	LinkBroken   LinkStatus = "broken"
	LinkRedirect LinkStatus = "redirect-available"
)

// Recorder defines observability hooks for a docrefs run. Implementations
// must tolerate being called with zero values.
type Recorder interface {
	IncLinkResult(status LinkStatus)
	IncAnchorResult(valid bool)
	IncSuggestion(confidence string) // high|medium|low|none
	IncFixResult(success bool)
	AddRedirects(n int)
	ObserveRunDuration(command string, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncLinkResult(LinkStatus)                  {}
func (NoopRecorder) IncAnchorResult(bool)                      {}
func (NoopRecorder) IncSuggestion(string)                      {}
func (NoopRecorder) IncFixResult(bool)                         {}
func (NoopRecorder) AddRedirects(int)                          {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}
