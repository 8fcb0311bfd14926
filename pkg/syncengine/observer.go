package syncengine

import (
	"context"

	"github.com/panefs/syncengine/pkg/contextutil"
)

// Observer is the capability record of callbacks the engine invokes during
// a Sync call. All six callbacks are optional in spirit but required in
// form: embed NoOpObserver to get explicit no-op defaults rather than
// branching on nil callbacks at every call site.
type Observer interface {
	// OnStart is invoked once, before any item is processed.
	OnStart(plan SyncPlan)
	// OnItemStart is invoked once per source that could be stat'ed, before
	// its destination fan-out begins. A source that cannot be stat'ed gets
	// only OnItemComplete.
	OnItemStart(item ItemInfo)
	// OnItemProgress is invoked once per destination copy or verify
	// success. It may be called concurrently by multiple destination
	// tasks for the same item.
	OnItemProgress(item ItemInfo, bytesAdded int64)
	// OnItemComplete is invoked once per source, after its destination
	// fan-out finishes.
	OnItemComplete(item ItemInfo, result ItemResult)
	// OnProgress is invoked once after each source, carrying the rolling
	// aggregate stats.
	OnProgress(stats SyncStats)
	// OnFinish is invoked once, as the last event of a Sync call.
	OnFinish(result SyncResult)
}

// NoOpObserver implements Observer with callbacks that do nothing. Embed it
// in a partial observer to avoid implementing callbacks you don't care
// about.
type NoOpObserver struct{}

func (NoOpObserver) OnStart(SyncPlan)                          {}
func (NoOpObserver) OnItemStart(ItemInfo)                      {}
func (NoOpObserver) OnItemProgress(ItemInfo, int64)             {}
func (NoOpObserver) OnItemComplete(ItemInfo, ItemResult)        {}
func (NoOpObserver) OnProgress(SyncStats)                       {}
func (NoOpObserver) OnFinish(SyncResult)                        {}

// CancelSignal reports whether the caller has requested cooperative
// cancellation. It is checked at the head of the source loop and at the
// head of each destination task; an in-flight copy is never interrupted.
type CancelSignal interface {
	Aborted() bool
}

// noCancel is the default CancelSignal used when the caller supplies none.
type noCancel struct{}

func (noCancel) Aborted() bool { return false }

// NoCancel is a CancelSignal that is never aborted.
var NoCancel CancelSignal = noCancel{}

// contextCancelSignal adapts a context.Context to CancelSignal.
type contextCancelSignal struct {
	ctx context.Context
}

func (c contextCancelSignal) Aborted() bool {
	return contextutil.IsCancelled(c.ctx)
}

// CancelFromContext adapts ctx to a CancelSignal, so that callers already
// holding a context.Context (the idiomatic Go cancellation handle) can pass
// it directly to Engine.Sync.
func CancelFromContext(ctx context.Context) CancelSignal {
	return contextCancelSignal{ctx: ctx}
}
