package syncengine

import (
	"time"

	"github.com/panefs/syncengine/pkg/comparison"
	"github.com/panefs/syncengine/pkg/fileops"
	"github.com/panefs/syncengine/pkg/hashing"
	"github.com/panefs/syncengine/pkg/logging"
	"github.com/panefs/syncengine/pkg/parallelism"
	"github.com/panefs/syncengine/pkg/storemonitor"
	"github.com/panefs/syncengine/pkg/verification"
)

// Engine is the sync orchestrator. It fans a source out to all destinations
// in parallel, invokes the comparator, file ops, and verifier, updates a
// store monitor, emits observer events, enforces move ordering, and handles
// cancellation and store-failure abort. Engine holds no state across Sync
// calls; a fresh Monitor is created for every invocation.
type Engine struct {
	logger *logging.Logger
}

// New creates an Engine.
func New() *Engine {
	return &Engine{
		logger: logging.RootLogger.Sublogger("syncengine"),
	}
}

// Sync copies (or moves) sources to every destination, returning once every
// source has been processed, cancellation was observed, or a destination
// store was marked unavailable.
func (e *Engine) Sync(sources, destinations []string, options SyncOptions, observer Observer, cancel CancelSignal) SyncResult {
	if observer == nil {
		observer = NoOpObserver{}
	}
	if cancel == nil {
		cancel = NoCancel
	}

	start := time.Now()
	plan := buildPlan(sources, destinations)
	observer.OnStart(plan)

	monitor := storemonitor.New(options.Threshold)

	var array *parallelism.SIMDWorkerArray
	if len(destinations) > 0 {
		array = parallelism.NewSIMDWorkerArray(len(destinations))
		defer array.Terminate()
	}

	var result SyncResult
	var toDelete []string

	for _, source := range sources {
		if cancel.Aborted() {
			result.Cancelled = true
			break
		}
		if monitor.HasUnavailableStore() {
			result.StoreFailureAbort = true
			break
		}

		shouldDelete := e.syncItem(source, destinations, options, observer, monitor, cancel, array, &result)
		if shouldDelete {
			toDelete = append(toDelete, source)
		}

		observer.OnProgress(SyncStats{
			BytesCopied:    result.BytesCopied,
			ItemsCompleted: result.ItemsCompleted,
			ItemsFailed:    result.ItemsFailed,
			ItemsSkipped:   result.ItemsSkipped,
		})
	}

	if options.Move && !result.Cancelled && !result.StoreFailureAbort {
		for _, path := range toDelete {
			if err := fileops.Delete(path); err != nil {
				result.Errors = append(result.Errors, ErrorEntry{
					Item:       path,
					Message:    err.Error(),
					ErrorClass: storemonitor.ErrorClassFileSpecific,
				})
			}
		}
	}

	result.DurationMs = time.Since(start).Milliseconds()
	observer.OnFinish(result)
	return result
}

// syncItem runs the per-source fan-out to every destination and folds the
// outcome into result. It returns whether the source should be scheduled
// for deletion under move semantics.
func (e *Engine) syncItem(
	source string,
	destinations []string,
	options SyncOptions,
	observer Observer,
	monitor *storemonitor.Monitor,
	cancel CancelSignal,
	array *parallelism.SIMDWorkerArray,
	result *SyncResult,
) bool {
	stat, err := fileops.StatPath(source)
	if err != nil || stat == nil {
		item := ItemInfo{SourcePath: source}
		itemResult := ItemResult{
			Error: &ResultError{
				Message: "source file does not exist or is inaccessible",
				Class:   storemonitor.ErrorClassFileSpecific,
			},
		}
		result.ItemsFailed++
		result.Errors = append(result.Errors, ErrorEntry{
			Item:       source,
			Message:    itemResult.Error.Message,
			ErrorClass: itemResult.Error.Class,
		})
		observer.OnItemComplete(item, itemResult)
		return false
	}

	item := ItemInfo{SourcePath: source, Size: stat.Size, IsDirectory: stat.IsDir}
	observer.OnItemStart(item)

	var sourceDigest hashing.Digest
	var hasDigest bool
	if options.needsSourceDigest() {
		digest, err := hashing.HashFile(source, options.HashAlgorithm.Resolved())
		if err != nil {
			e.logger.Warnf("unable to compute source digest for %s: %s", source, err)
		} else {
			sourceDigest = digest
			hasDigest = true
		}
	}

	destResults := e.fanOutToDestinations(destinations, item, sourceDigest, hasDigest, options, cancel, monitor, observer, array)

	itemResult, copiedCount, anyError := classifyItemResult(destResults)

	shouldDelete := false
	switch {
	case anyError:
		result.ItemsFailed++
		for _, destResult := range destResults {
			if destResult.Error != nil {
				result.Errors = append(result.Errors, ErrorEntry{
					Item:       source,
					Message:    destResult.Error.Message,
					ErrorClass: destResult.Error.Class,
				})
			}
		}
	case len(destResults) > 0 && allSkipped(destResults):
		result.ItemsSkipped++
	default:
		result.ItemsCompleted++
		result.BytesCopied += item.Size * int64(copiedCount)
		if options.Move {
			shouldDelete = true
		}
	}

	observer.OnItemComplete(item, itemResult)
	return shouldDelete
}

// fanOutToDestinations runs syncToDestination for every destination in
// parallel, using array when available (len(destinations) > 0).
func (e *Engine) fanOutToDestinations(
	destinations []string,
	item ItemInfo,
	sourceDigest hashing.Digest,
	hasDigest bool,
	options SyncOptions,
	cancel CancelSignal,
	monitor *storemonitor.Monitor,
	observer Observer,
	array *parallelism.SIMDWorkerArray,
) []DestResult {
	if len(destinations) == 0 {
		return nil
	}

	work := &destFanWork{
		engine:       e,
		destinations: destinations,
		item:         item,
		sourceDigest: sourceDigest,
		hasDigest:    hasDigest,
		options:      options,
		cancel:       cancel,
		monitor:      monitor,
		observer:     observer,
		results:      make([]DestResult, len(destinations)),
	}
	array.Do(work)
	return work.results
}

// syncToDestination performs the full per-destination state machine:
// compare, copy, optionally verify, and record the outcome with the store
// monitor.
func (e *Engine) syncToDestination(
	destDir string,
	item ItemInfo,
	sourceDigest hashing.Digest,
	hasDigest bool,
	options SyncOptions,
	cancel CancelSignal,
	monitor *storemonitor.Monitor,
	observer Observer,
) DestResult {
	destPath := fileops.DestinationPath(destDir, item.SourcePath)

	if cancel.Aborted() {
		return DestResult{
			DestPath: destPath,
			Error: &ResultError{
				Message: "cancelled before destination task started",
				Class:   storemonitor.ErrorClassFileSpecific,
			},
		}
	}

	if comparison.AreEquivalent(item.SourcePath, destPath, options.CompareMethod, options.HashAlgorithm, options.HasHashAlgorithm) {
		monitor.RecordSuccess(destPath)
		return DestResult{DestPath: destPath, Skipped: true}
	}

	if err := fileops.Copy(item.SourcePath, destPath); err != nil {
		class := storemonitor.ClassifyError(err)
		monitor.RecordError(destPath, class)
		return DestResult{
			DestPath: destPath,
			Error:    &ResultError{Message: err.Error(), Class: class},
		}
	}

	if options.VerifyDestination && hasDigest {
		if !verification.VerifyDestination(sourceDigest, destPath, options.HashAlgorithm.Resolved()) {
			monitor.RecordError(destPath, storemonitor.ErrorClassVerifyFailed)
			return DestResult{
				DestPath: destPath,
				Error: &ResultError{
					Message: "destination verification failed: digest mismatch",
					Class:   storemonitor.ErrorClassVerifyFailed,
				},
			}
		}
	}

	monitor.RecordSuccess(destPath)
	observer.OnItemProgress(item, item.Size)

	return DestResult{DestPath: destPath}
}

// destFanWork adapts a single item's destination fan-out to the
// parallelism.SIMDWork interface: every worker handles the destination at
// its own index, writing its result without contention.
type destFanWork struct {
	engine       *Engine
	destinations []string
	item         ItemInfo
	sourceDigest hashing.Digest
	hasDigest    bool
	options      SyncOptions
	cancel       CancelSignal
	monitor      *storemonitor.Monitor
	observer     Observer
	results      []DestResult
}

func (w *destFanWork) Do(index, size int) error {
	w.results[index] = w.engine.syncToDestination(
		w.destinations[index],
		w.item,
		w.sourceDigest,
		w.hasDigest,
		w.options,
		w.cancel,
		w.monitor,
		w.observer,
	)
	return nil
}

// classifyItemResult folds a source's DestResults into the ItemResult the
// observer sees, along with the count of destinations actually copied (not
// skipped) and whether any destination errored.
func classifyItemResult(destResults []DestResult) (ItemResult, int, bool) {
	itemResult := ItemResult{DestResults: destResults}

	copiedCount := 0
	anyError := false
	for _, destResult := range destResults {
		if destResult.Error != nil {
			if !anyError {
				itemResult.Error = destResult.Error
			}
			anyError = true
		} else if !destResult.Skipped {
			copiedCount++
		}
	}

	return itemResult, copiedCount, anyError
}

// allSkipped reports whether every DestResult in results was skipped.
func allSkipped(results []DestResult) bool {
	for _, result := range results {
		if !result.Skipped {
			return false
		}
	}
	return true
}
