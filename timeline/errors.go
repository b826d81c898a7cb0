package timeline

import "fmt"

// InvalidTimelineEmission is returned when a compiled Timeline fails its own
// structural invariants (spec §7 kind 2). Seeing this error means the
// compiler produced something internally inconsistent — a bug in Compile
// or one of its planners, never a malformed Script.
type InvalidTimelineEmission struct {
	Reason string
}

func (e *InvalidTimelineEmission) Error() string {
	return fmt.Sprintf("invalid timeline emission: %s", e.Reason)
}

func invalid(format string, args ...any) *InvalidTimelineEmission {
	return &InvalidTimelineEmission{Reason: fmt.Sprintf(format, args...)}
}
