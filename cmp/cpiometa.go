// cpiometa.go - cpio member metadata comparator
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

// cpioMemberMetadata applies only to members of a cpio archive. It
// settles Different on a mode mismatch, on uid/gid mismatch unless
// ownership is being ignored, on an rdevmajor/rdevminor mismatch (the
// box adapter packs both into Info.Dev, see box.devNum), or on a
// filesize mismatch; a zero-size match is conclusively Same, otherwise
// Indeterminate so Bitwise still examines content.
type cpioMemberMetadata struct{}

func NewCpioMemberMetadata() xdiff.Comparator { return cpioMemberMetadata{} }

func (cpioMemberMetadata) Name() string { return "cpio-member-metadata" }

func (cpioMemberMetadata) Applies(lhs, rhs *xdiff.Item) bool {
	lp, rp := lhs.Parent(), rhs.Parent()
	if lp == lhs || rp == rhs {
		return false
	}
	lb, rb := lp.Box(), rp.Box()
	return lb != nil && rb != nil && lb.Name() == "cpio" && rb.Name() == "cpio"
}

func (cpioMemberMetadata) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
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

	if lfi.Dev != rfi.Dev {
		return xdiff.Different, nil
	}
	if lfi.Size() != rfi.Size() {
		return xdiff.Different, nil
	}

	if lfi.Size() == 0 {
		return xdiff.Same, nil
	}
	return xdiff.Indeterminate, nil
}
