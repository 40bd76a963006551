package draft

import (
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// DiffStat counts the lines a draft restore would add and remove relative to
// the buffer it replaces. Used for the restore status hint.
func DiffStat(before, after string) (added, removed int) {
	edits := myers.ComputeEdits(span.URIFromPath("draft"), before, after)
	unified := gotextdiff.ToUnified("before", "after", before, edits)
	for _, hunk := range unified.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case gotextdiff.Insert:
				added++
			case gotextdiff.Delete:
				removed++
			}
		}
	}
	return added, removed
}
