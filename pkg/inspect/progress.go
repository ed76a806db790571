// pkg/inspect/progress.go
package inspect

import (
	"io"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressBarCallback creates a progress callback that renders an overall bar
// and a running count of non-gzip and failed files to w.
// Returns the callback function and the progress container (call Wait() after Inspect)
func ProgressBarCallback(w io.Writer) (ProgressCallback, *mpb.Progress) {
	progress := mpb.New(
		mpb.WithOutput(w),
		mpb.WithWidth(60),
		mpb.WithRefreshRate(100*time.Millisecond),
		mpb.WithAutoRefresh(),
	)

	var overallBar *mpb.Bar
	var failed atomic.Int64

	callback := func(event ProgressEvent) {
		switch event.Type {
		case EventStart:
			overallBar = progress.AddBar(int64(event.Total),
				mpb.PrependDecorators(
					decor.Name("Inspecting", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
					decor.Any(func(decor.Statistics) string {
						if n := failed.Load(); n > 0 {
							return "  skipped: " + strconv.FormatInt(n, 10)
						}
						return ""
					}),
				),
			)
			// An empty scan never increments, so complete the bar right away
			if event.Total == 0 {
				overallBar.SetTotal(0, true)
			}

		case EventFileInspect:
			if overallBar != nil {
				overallBar.Increment()
			}

		case EventError:
			failed.Add(1)
			if overallBar != nil {
				overallBar.Increment()
			}

		case EventComplete:
			if overallBar != nil && !overallBar.Completed() {
				overallBar.SetTotal(-1, true)
			}

		case EventCancelled:
			if overallBar != nil && !overallBar.Completed() {
				overallBar.Abort(false)
			}
		}
	}

	return callback, progress
}
