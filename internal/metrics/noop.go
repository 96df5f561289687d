package metrics

import "time"

// Noop discards all measurements.
type Noop struct{}

func (Noop) RecordOperation(string, string, time.Duration) {}

func (Noop) RecordError(string, string) {}
