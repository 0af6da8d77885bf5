// bitwise.go - byte-exact comparator, mmap-preferring for fs-backed files
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
	"os"

	"github.com/opencoff/go-mmap"
	"github.com/opencoff/xdiff"
)

// Bitwise applies to any pair of regular files, filesystem or archive
// member alike. When both sides are filesystem-backed and neither has
// materialized content yet, it prefers memory-mapped comparison and -
// on equality - deliberately does not retain the mapped bytes in the
// Item's content cache. On inequality (or when mmap isn't available),
// it falls back to ResolveContent and keeps the bytes so later
// comparators in the chain (AMComparator, Fail, ...) don't re-read.
type bitwise struct{}

func NewBitwise() xdiff.Comparator { return bitwise{} }

func (bitwise) Name() string { return "bitwise" }

func (bitwise) Applies(lhs, rhs *xdiff.Item) bool {
	return lhs.IsReg() && rhs.IsReg()
}

func (bitwise) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	ls, err := c.Lhs.ResolveSize()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rs, err := c.Rhs.ResolveSize()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	if ls != rs {
		return xdiff.Indeterminate, nil
	}

	if isFSItem(c.Lhs) && isFSItem(c.Rhs) {
		if _, ok := c.Lhs.Content(); !ok {
			if _, ok := c.Rhs.Content(); !ok {
				eq, err := mmapEqual(c.Lhs.Name(), c.Rhs.Name())
				if err == nil {
					if eq {
						return xdiff.Same, nil
					}
					// fall through to byte-retaining compare below
					// so the rest of the chain can inspect content.
				}
			}
		}
	}

	lb, err := c.Lhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rb, err := c.Rhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	if bytes.Equal(lb, rb) {
		return xdiff.Same, nil
	}
	return xdiff.Indeterminate, nil
}

// mmapEqual compares two filesystem-backed files via mmap without
// retaining either mapping past this call.
func mmapEqual(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	var abuf []byte
	if _, err := mmap.Reader(fa, func(b []byte) error {
		abuf = append([]byte(nil), b...)
		return nil
	}); err != nil {
		return false, err
	}

	var eq bool
	_, err = mmap.Reader(fb, func(b []byte) error {
		eq = bytes.Equal(abuf, b)
		return nil
	})
	if err != nil {
		return false, err
	}
	return eq, nil
}
