// Package syncengine implements the orchestrator that copies (or moves) a
// set of source files to many destination directories at once, with
// optional content verification, policy-driven skip decisions, safe move
// ordering, and store-failure abort.
package syncengine

import (
	"github.com/panefs/syncengine/pkg/comparison"
	"github.com/panefs/syncengine/pkg/hashing"
	"github.com/panefs/syncengine/pkg/storemonitor"
)

// SyncOptions controls the behavior of a single Engine.Sync invocation.
// Every field is present, and the zero value of each resolves to its
// default; there is no undefined-vs-missing distinction.
type SyncOptions struct {
	// Move requests copy-then-delete-source semantics. The source is only
	// deleted if every destination succeeded for that source.
	Move bool
	// CompareMethod selects the skip policy. The zero value resolves to
	// comparison.MethodSizeModTime.
	CompareMethod comparison.Method
	// HashAlgorithm selects the digest algorithm used when CompareMethod is
	// MethodHash or VerifyDestination is true. The zero value resolves to
	// hashing.AlgorithmBlake3.
	HashAlgorithm hashing.Algorithm
	// HasHashAlgorithm distinguishes an explicitly supplied HashAlgorithm
	// from one merely defaulted to its zero value, so that MethodHash
	// without an algorithm can degrade (with a warning) rather than
	// silently picking a default.
	HasHashAlgorithm bool
	// VerifyDestination requests that the destination digest be recomputed
	// and compared against the source digest after copy.
	VerifyDestination bool
	// Threshold overrides the store monitor's promotion threshold. Zero
	// uses storemonitor.DefaultThreshold.
	Threshold int
}

// needsSourceDigest reports whether sync_item must compute a source digest
// before fanning out to destinations.
func (o SyncOptions) needsSourceDigest() bool {
	return o.VerifyDestination || o.CompareMethod.Resolved() == comparison.MethodHash
}

// SyncPlan is an immutable snapshot of the work a Sync call is about to
// perform, computed once up front and handed to Observer.OnStart.
type SyncPlan struct {
	TotalItems        int
	TotalDestinations int
	TotalBytes        int64
	Sources           []string
	Destinations      []string
}

// ItemInfo describes a single source file as it enters the per-item
// fan-out. It is created once per source before destinations are touched.
type ItemInfo struct {
	SourcePath  string
	Size        int64
	IsDirectory bool
}

// ResultError is the classified error attached to a DestResult or to a
// SyncResult.Errors entry.
type ResultError struct {
	Message string
	Class   storemonitor.ErrorClass
}

// DestResult is the outcome of syncing one item to one destination. At most
// one of Skipped or Error holds; neither holding means the file was copied
// (and, if requested, verified) successfully.
type DestResult struct {
	DestPath string
	Skipped  bool
	Error    *ResultError
}

// ItemResult aggregates the DestResults for a single source across all
// destinations. Error is set if any DestResult has an error.
type ItemResult struct {
	DestResults []DestResult
	Error       *ResultError
}

// HasError reports whether any destination failed for this item.
func (r ItemResult) HasError() bool {
	return r.Error != nil
}

// SyncStats is the rolling aggregate handed to Observer.OnProgress after
// each source. It shares representation with the corresponding fields of
// SyncResult but is updated after each source rather than each destination.
type SyncStats struct {
	BytesCopied    int64
	ItemsCompleted int
	ItemsFailed    int
	ItemsSkipped   int
}

// ErrorEntry is one entry in SyncResult.Errors: the source item the error
// was attached to, the classified error, and a human-readable message.
type ErrorEntry struct {
	Item      string
	Message   string
	ErrorClass storemonitor.ErrorClass
}

// SyncResult is the final, complete outcome of a Sync invocation.
type SyncResult struct {
	Cancelled         bool
	StoreFailureAbort bool
	ItemsCompleted    int
	ItemsFailed       int
	ItemsSkipped      int
	BytesCopied       int64
	DurationMs        int64
	Errors            []ErrorEntry
}
