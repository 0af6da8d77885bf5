// nosuchfile.go - absent-entry comparator
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

// NoSuchFile is first in the default chain: it always applies, and
// settles the verdict immediately whenever either side is absent.
type noSuchFile struct{}

func NewNoSuchFile() xdiff.Comparator { return noSuchFile{} }

func (noSuchFile) Name() string { return "nosuchfile" }

func (noSuchFile) Applies(lhs, rhs *xdiff.Item) bool { return true }

func (noSuchFile) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	if _, err := c.Lhs.ResolveStat(); err != nil {
		return xdiff.Indeterminate, err
	}
	if _, err := c.Rhs.ResolveStat(); err != nil {
		return xdiff.Indeterminate, err
	}

	lok, rok := c.Lhs.Exists(), c.Rhs.Exists()
	switch {
	case !lok && !rok:
		return xdiff.Same, nil
	case lok != rok:
		return xdiff.Different, nil
	default:
		return xdiff.Indeterminate, nil
	}
}
