package syncengine

import (
	"sync/atomic"
	"time"

	"github.com/panefs/syncengine/pkg/timeutil"
)

// deadlineCancelSignal fires Aborted() once a fixed duration elapses. It
// exists for callers that want a simple time-based cutoff without wiring up
// a context.Context.
type deadlineCancelSignal struct {
	fired *atomic.Bool
	timer *time.Timer
}

// Aborted implements CancelSignal.
func (d *deadlineCancelSignal) Aborted() bool {
	return d.fired.Load()
}

// CancelAfter returns a CancelSignal that becomes aborted once duration has
// elapsed. The returned stop function releases the underlying timer and
// should be called once the Sync call using this signal has returned,
// regardless of whether the deadline was reached.
func CancelAfter(duration time.Duration) (signal CancelSignal, stop func()) {
	fired := &atomic.Bool{}
	timer := time.AfterFunc(duration, func() {
		fired.Store(true)
	})
	d := &deadlineCancelSignal{fired: fired, timer: timer}
	return d, func() { timeutil.StopAndDrainTimer(timer) }
}
