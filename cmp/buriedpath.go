// buriedpath.go - common-suffix path-prefix scrubber comparator
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
	"strings"

	"github.com/opencoff/xdiff"
)

// buriedPath replaces each side's unique path prefix (relative to the
// common suffix of the two extended names) with a placeholder before
// comparing content - useful for files that embed their own build
// path (e.g. absolute paths baked into generated headers). It is
// implemented per spec but deliberately left out of DefaultChain:
// its behavior when the common-suffix algorithm yields an empty
// suffix is unspecified, so callers who want it must opt in
// explicitly.
type buriedPath struct{}

func NewBuriedPath() xdiff.Comparator { return buriedPath{} }

func (buriedPath) Name() string { return "buried-path" }

func (buriedPath) Applies(lhs, rhs *xdiff.Item) bool {
	return lhs.IsReg() && rhs.IsReg()
}

func (buriedPath) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	suffix := commonSuffix(c.Lhs.Name(), c.Rhs.Name())
	if suffix == "" {
		return xdiff.Indeterminate, nil
	}

	lprefix := strings.TrimSuffix(c.Lhs.Name(), suffix)
	rprefix := strings.TrimSuffix(c.Rhs.Name(), suffix)

	lb, err := c.Lhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rb, err := c.Rhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}

	const placeholder = "<BURIEDPATH>"
	ln := strings.ReplaceAll(string(lb), lprefix, placeholder)
	rn := strings.ReplaceAll(string(rb), rprefix, placeholder)

	if ln == rn {
		return xdiff.Same, nil
	}
	return xdiff.Indeterminate, nil
}

// commonSuffix returns the longest string that terminates both a and
// b, stopping at a path separator boundary so it never splits a path
// component in half.
func commonSuffix(a, b string) string {
	i, j := len(a), len(b)
	for i > 0 && j > 0 && a[i-1] == b[j-1] {
		i--
		j--
	}
	suf := a[i:]
	if idx := strings.IndexByte(suf, '/'); idx > 0 {
		return suf[idx:]
	}
	if strings.HasPrefix(suf, "/") || suf == a {
		return suf
	}
	return ""
}
