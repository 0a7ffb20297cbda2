package clock

import "time"

// Interface represents the portion of the stdlib time package that devicepool
// needs from a clock: the current time.  It exists so WorkerContext.log can be
// tested with clocktest.Mock instead of real wall-clock time.
type Interface interface {
	Now() time.Time
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}
