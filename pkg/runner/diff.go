package runner

import (
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffText renders the edits from before to after, one per line, as
// "-" or "+" followed by the quoted text removed or inserted
func diffText(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("-" + strconv.Quote(d.Text) + "\n")
		case diffmatchpatch.DiffInsert:
			b.WriteString("+" + strconv.Quote(d.Text) + "\n")
		}
	}
	return b.String()
}
