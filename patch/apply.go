// Package patch applies textual find/replace edits to generated overlay
// programs. The model sends edits instead of a full program when refining an
// existing overlay, which keeps untouched sections byte-identical and avoids
// regeneration drift.
package patch

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Edit replaces the first occurrence of Find with Replace.
type Edit struct {
	Find    string
	Replace string
}

// Apply applies edits to source in order. Each edit must match: an edit whose
// Find text is absent from the current text is an error naming the edit, and
// the original source is returned unchanged.
func Apply(source string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return source, nil
	}

	text := source
	for i, edit := range edits {
		if edit.Find == "" {
			return source, fmt.Errorf("edit %d: empty find text", i+1)
		}
		if !strings.Contains(text, edit.Find) {
			return source, fmt.Errorf("edit %d: find text not present: %q", i+1, truncate(edit.Find, 80))
		}
		text = strings.Replace(text, edit.Find, edit.Replace, 1)
	}
	return text, nil
}

// Summary renders a compact human-readable diff between the original and the
// edited text, for the debug log and for display alongside a refined program.
func Summary(before, after string) string {
	if before == after {
		return "no changes"
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "+%s", truncate(d.Text, 120))
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "-%s", truncate(d.Text, 120))
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
