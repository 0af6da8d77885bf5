// emptyfile.go - both-empty short circuit
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

// EmptyFile applies when both sides are regular files; it settles
// the verdict only when both are zero-length, leaving everything
// else to later, more specific comparators.
type emptyFile struct{}

func NewEmptyFile() xdiff.Comparator { return emptyFile{} }

func (emptyFile) Name() string { return "emptyfile" }

func (emptyFile) Applies(lhs, rhs *xdiff.Item) bool {
	return lhs.IsReg() && rhs.IsReg()
}

func (emptyFile) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	ls, err := c.Lhs.ResolveSize()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rs, err := c.Rhs.ResolveSize()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	if ls == 0 && rs == 0 {
		return xdiff.Same, nil
	}
	return xdiff.Indeterminate, nil
}
