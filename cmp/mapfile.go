// mapfile.go - linker map file comparator
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
	"bytes"
	"regexp"

	"github.com/opencoff/xdiff"
)

var tmpNumRe = regexp.MustCompile(`tmp-\d+`)

// mapComparator matches ld(1) map files (content begins with
// "Archive member included"). Unlike most text comparators it never
// settles Different on its own - a textual mismatch just means some
// other normalization is needed, so the chain keeps looking.
type mapComparator struct{}

func NewMapComparator() xdiff.Comparator { return mapComparator{} }

func (mapComparator) Name() string { return "ld-map" }

func (mapComparator) Applies(lhs, rhs *xdiff.Item) bool {
	if !lhs.IsReg() || !rhs.IsReg() {
		return false
	}
	lb, err := lhs.ResolveContent()
	if err != nil || !bytes.HasPrefix(lb, []byte("Archive member included")) {
		return false
	}
	rb, err := rhs.ResolveContent()
	if err != nil || !bytes.HasPrefix(rb, []byte("Archive member included")) {
		return false
	}
	return true
}

func (mapComparator) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lb, err := c.Lhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rb, err := c.Rhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}

	ln := tmpNumRe.ReplaceAllString(string(lb), "tmp-0")
	rn := tmpNumRe.ReplaceAllString(string(rb), "tmp-0")
	if ln == rn {
		return xdiff.Same, nil
	}
	return xdiff.Indeterminate, nil
}
