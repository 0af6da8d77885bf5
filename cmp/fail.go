// fail.go - unconditional catch-all comparator
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
)

// fail always applies and always settles Different. It anchors the
// end of DefaultChain so Dispatch never falls through with no verdict.
type fail struct{}

func NewFail() xdiff.Comparator { return fail{} }

func (fail) Name() string { return "fail" }

func (fail) Applies(lhs, rhs *xdiff.Item) bool { return true }

func (fail) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lhs, lerr := c.Lhs.ResolveContent()
	rhs, rerr := c.Rhs.ResolveContent()
	if lerr == nil && rerr == nil {
		logUnifiedDiff(c, c.Lhs.Name(), c.Rhs.Name(), string(lhs), string(rhs))
	}
	return xdiff.Different, nil
}
