// tarmeta.go - tar member metadata comparator
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
	"github.com/opencoff/xdiff/box"
)

// tarMemberMetadata applies only to members of a tar archive. It
// settles Different on a mode, type or linkname mismatch, or on
// uid/uname or gid/gname mismatch unless the corresponding ownership
// bit is being ignored; a zero-size match is conclusively Same,
// otherwise Indeterminate so Bitwise still examines content.
type tarMemberMetadata struct{}

func NewTarMemberMetadata() xdiff.Comparator { return tarMemberMetadata{} }

func (tarMemberMetadata) Name() string { return "tar-member-metadata" }

func (tarMemberMetadata) Applies(lhs, rhs *xdiff.Item) bool {
	lp, rp := lhs.Parent(), rhs.Parent()
	if lp == lhs || rp == rhs {
		return false
	}
	lb, rb := lp.Box(), rp.Box()
	return lb != nil && rb != nil && lb.Name() == "tar" && rb.Name() == "tar"
}

func (tarMemberMetadata) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lfi, err := c.Lhs.ResolveStat()
	if err != nil || lfi == nil {
		return xdiff.Indeterminate, err
	}
	rfi, err := c.Rhs.ResolveStat()
	if err != nil || rfi == nil {
		return xdiff.Indeterminate, err
	}

	lp, rp := c.Lhs.Parent(), c.Rhs.Parent()
	tc, ok := lp.Box().(box.TarContainer)
	if !ok {
		return xdiff.Indeterminate, nil
	}
	lm, lok := tc.MemberTarMeta(lp.SessionOf(), c.Lhs.ShortName())
	rm, rok := tc.MemberTarMeta(rp.SessionOf(), c.Rhs.ShortName())
	if !lok || !rok {
		return xdiff.Indeterminate, nil
	}

	if lfi.Mode() != rfi.Mode() || lm.Type != rm.Type || lm.Linkname != rm.Linkname {
		return xdiff.Different, nil
	}

	own := c.IgnoreOwn
	if !own.Has(xdiff.IGN_UID) && (lfi.Uid != rfi.Uid || lm.Uname != rm.Uname) {
		return xdiff.Different, nil
	}
	if !own.Has(xdiff.IGN_GID) && (lfi.Gid != rfi.Gid || lm.Gname != rm.Gname) {
		return xdiff.Different, nil
	}

	if lfi.Size() == 0 {
		return xdiff.Same, nil
	}
	return xdiff.Indeterminate, nil
}
