// inode.go - same-inode short circuit
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

// Inode applies when both sides are real filesystem entries (i.e.
// the extended path has no archive segment - equivalently, both
// items resolve a non-nil stat with a meaningful device number via
// the directory adapter). Equal (inode, device) is sufficient proof
// of identity: they are the same file, possibly reached via two
// different paths (hardlinks, bind mounts).
type inode struct{}

func NewInode() xdiff.Comparator { return inode{} }

func (inode) Name() string { return "inode" }

func (inode) Applies(lhs, rhs *xdiff.Item) bool {
	return isFSItem(lhs) && isFSItem(rhs)
}

// isFSItem reports whether 'it' is reachable through Directory
// adapters all the way to a top-level item - i.e. it names a real
// filesystem path rather than an archive member, whose synthesized
// Info carries no meaningful inode/device numbers.
func isFSItem(it *xdiff.Item) bool {
	for {
		if it.Parent() == it {
			return true
		}
		box := it.Parent().Box()
		if box == nil || box.Name() != "dir" {
			return false
		}
		it = it.Parent()
	}
}

func (inode) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lfi, err := c.Lhs.ResolveStat()
	if err != nil || lfi == nil {
		return xdiff.Indeterminate, err
	}
	rfi, err := c.Rhs.ResolveStat()
	if err != nil || rfi == nil {
		return xdiff.Indeterminate, err
	}

	if lfi.SameInode(rfi) {
		return xdiff.Same, nil
	}
	return xdiff.Indeterminate, nil
}
