// symlink.go - symbolic link target comparator
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

// Symlink is final for links: unlike the other comparators it never
// returns Indeterminate, since target-string equality is the whole
// of what "close enough" means for a symlink.
type symlink struct{}

func NewSymlink() xdiff.Comparator { return symlink{} }

func (symlink) Name() string { return "symlink" }

func (symlink) Applies(lhs, rhs *xdiff.Item) bool {
	return lhs.IsLnk() && rhs.IsLnk()
}

func (symlink) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lt, err := c.Lhs.ResolveLink()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rt, err := c.Rhs.ResolveLink()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	if lt == rt {
		return xdiff.Same, nil
	}
	return xdiff.Different, nil
}
