// diffutil.go - unified-diff logging helper
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package cmp

import (
	"github.com/opencoff/xdiff"
	"github.com/pmezard/go-difflib/difflib"
)

// logUnifiedDiff renders a unified diff of 'lhs' vs 'rhs' text and
// pushes it through the Comparison's Reporter, if any. Every textual
// Different verdict in this package accompanies its verdict with a
// diff, per spec 6 ("Unified diffs accompany textual Different
// verdicts").
func logUnifiedDiff(c *xdiff.Comparison, lname, rname, lhs, rhs string) {
	if c.Reporter == nil {
		return
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(lhs),
		B:        difflib.SplitLines(rhs),
		FromFile: lname,
		ToFile:   rname,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return
	}
	c.Reporter.Diff(lname, text)
}
