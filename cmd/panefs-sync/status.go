package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/panefs/syncengine/cmd"
	"github.com/panefs/syncengine/pkg/syncengine"
)

// liveObserver prints one colorized line per completed item and a final
// humanized summary. It embeds syncengine.NoOpObserver so it only needs to
// implement the callbacks it cares about.
type liveObserver struct {
	syncengine.NoOpObserver
	printer *cmd.StatusLinePrinter
}

func newLiveObserver() *liveObserver {
	return &liveObserver{printer: &cmd.StatusLinePrinter{}}
}

func (o *liveObserver) OnItemStart(item syncengine.ItemInfo) {
	o.printer.Print(fmt.Sprintf("syncing %s...", item.SourcePath))
}

func (o *liveObserver) OnItemComplete(item syncengine.ItemInfo, result syncengine.ItemResult) {
	o.printer.Clear()
	switch {
	case result.HasError():
		fmt.Println(color.RedString("fail"), item.SourcePath, "-", result.Error.Message)
	case len(result.DestResults) > 0 && allSkipped(result.DestResults):
		fmt.Println(color.YellowString("skip"), item.SourcePath)
	default:
		fmt.Println(color.GreenString("done"), item.SourcePath)
	}
}

func (o *liveObserver) OnFinish(result syncengine.SyncResult) {
	o.printer.Clear()
	summary := fmt.Sprintf(
		"%s items completed, %s failed, %s skipped, %s copied",
		humanize.Comma(int64(result.ItemsCompleted)),
		humanize.Comma(int64(result.ItemsFailed)),
		humanize.Comma(int64(result.ItemsSkipped)),
		humanize.Bytes(uint64(result.BytesCopied)),
	)
	if result.Cancelled {
		summary += " (cancelled)"
	}
	if result.StoreFailureAbort {
		summary += " (aborted: destination store unavailable)"
	}
	fmt.Println(summary)
}

func allSkipped(results []syncengine.DestResult) bool {
	for _, result := range results {
		if !result.Skipped {
			return false
		}
	}
	return true
}
