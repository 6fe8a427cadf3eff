package bootstrap

import "fmt"

// Phase identifies which step of a bootstrap run failed.
type Phase int

const (
	PhaseAcquire Phase = iota
	PhaseReconfigure
	PhaseConfigure
	PhaseBuild
	PhaseInstall
)

func (p Phase) String() string {
	switch p {
	case PhaseAcquire:
		return "acquire"
	case PhaseReconfigure:
		return "reconfigure"
	case PhaseConfigure:
		return "configure"
	case PhaseBuild:
		return "build"
	case PhaseInstall:
		return "install"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// PhaseError reports a failed bootstrap phase. Variant is set for the
// per-interpreter phases (configure, build, install) and empty for the
// shared ones (acquire, reconfigure).
type PhaseError struct {
	Phase   Phase
	Variant string
	Err     error
}

func (e *PhaseError) Error() string {
	if e.Variant != "" {
		return fmt.Sprintf("%s (%s variant): %v", e.Phase, e.Variant, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// Retryable reports whether the failure is network-class and worth
// retrying. Only acquisition qualifies; build-tool failures are
// deterministic.
func (e *PhaseError) Retryable() bool { return e.Phase == PhaseAcquire }
