// dateblot.go - catch-all date-blotted bitwise comparator
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
	"github.com/opencoff/xdiff/blot"
)

// dateBlotBitwise is the last line of defense before Fail: run the
// date-blot table over both sides' content and compare what's left.
// Nothing upstream of it knows about embedded timestamps; this does,
// and nothing more.
type dateBlotBitwise struct{}

func NewDateBlotBitwise() xdiff.Comparator { return dateBlotBitwise{} }

func (dateBlotBitwise) Name() string { return "date-blot" }

func (dateBlotBitwise) Applies(lhs, rhs *xdiff.Item) bool {
	return lhs.IsReg() && rhs.IsReg()
}

func (dateBlotBitwise) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lb, err := c.Lhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rb, err := c.Rhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}

	ln := blot.BlotBytes(lb)
	rn := blot.BlotBytes(rb)
	if string(ln) == string(rn) {
		return xdiff.Same, nil
	}
	logUnifiedDiff(c, c.Lhs.Name(), c.Rhs.Name(), string(ln), string(rn))
	return xdiff.Different, nil
}
