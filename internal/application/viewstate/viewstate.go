// Package viewstate holds per-view state containers. Each container owns a
// slice of records behind a mutex and moves through a small lifecycle:
// Idle until started, Loading while the first read is in flight, then Ready
// or Failed. A Ready container only re-enters Loading through an explicit
// refresh; subscription pushes replace data in place.
//
// Read failures are recorded on the container (human-readable message plus
// a log line) so views can render them; mutation failures are returned to
// the caller instead.
package viewstate

// Phase is the lifecycle state of a view container.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}
