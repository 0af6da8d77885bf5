// armeta.go - ar member metadata comparator
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

// arMemberMetadata applies only to members of an ar archive. It
// settles Different on a mode mismatch, or on uid/gid mismatch unless
// ownership is being ignored; otherwise it is Indeterminate so later
// comparators (Bitwise, etc.) still examine content.
type arMemberMetadata struct{}

func NewArMemberMetadata() xdiff.Comparator { return arMemberMetadata{} }

func (arMemberMetadata) Name() string { return "ar-member-metadata" }

func (arMemberMetadata) Applies(lhs, rhs *xdiff.Item) bool {
	lp, rp := lhs.Parent(), rhs.Parent()
	if lp == lhs || rp == rhs {
		return false
	}
	lb, rb := lp.Box(), rp.Box()
	return lb != nil && rb != nil && lb.Name() == "ar" && rb.Name() == "ar"
}

func (arMemberMetadata) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lfi, err := c.Lhs.ResolveStat()
	if err != nil || lfi == nil {
		return xdiff.Indeterminate, err
	}
	rfi, err := c.Rhs.ResolveStat()
	if err != nil || rfi == nil {
		return xdiff.Indeterminate, err
	}

	if lfi.Mode() != rfi.Mode() {
		return xdiff.Different, nil
	}

	own := c.IgnoreOwn
	if !own.Has(xdiff.IGN_UID) && lfi.Uid != rfi.Uid {
		return xdiff.Different, nil
	}
	if !own.Has(xdiff.IGN_GID) && lfi.Gid != rfi.Gid {
		return xdiff.Different, nil
	}

	return xdiff.Indeterminate, nil
}
