package syncengine

import (
	"fmt"

	"github.com/panefs/syncengine/pkg/fileops"
	"github.com/panefs/syncengine/pkg/numeric"
)

// buildPlan computes the SyncPlan for a Sync invocation. Stat failures on a
// source contribute zero to TotalBytes; they are left to surface during the
// per-item phase rather than aborting plan construction.
func buildPlan(sources, destinations []string) SyncPlan {
	plan := SyncPlan{
		TotalItems:        len(sources),
		TotalDestinations: len(destinations),
		Sources:           sources,
		Destinations:      destinations,
	}

	var total uint64
	for _, source := range sources {
		stat, err := fileops.StatPath(source)
		if err != nil || stat == nil {
			continue
		}
		if stat.Size < 0 {
			continue
		}
		next := total + uint64(stat.Size)
		if next < total {
			panic(fmt.Sprintf("aggregate source size overflows %s", numeric.MaxUint64Description))
		}
		total = next
	}
	plan.TotalBytes = int64(total)

	return plan
}
