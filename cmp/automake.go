// automake.go - generated-Makefile comparator
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
	"path"
	"regexp"

	"github.com/opencoff/xdiff"
	"github.com/opencoff/xdiff/blot"
)

var (
	modversionRe = regexp.MustCompile(`(?m)^MODVERSION\s*=.*$`)
	buildinfoRe  = regexp.MustCompile(`(?m)^BUILDINFO\s*=.*$`)
)

// amComparator matches automake-generated Makefiles: basename
// "Makefile" carrying the automake banner comment within its first
// few lines.
type amComparator struct{}

func NewAMComparator() xdiff.Comparator { return amComparator{} }

func (amComparator) Name() string { return "automake-makefile" }

func (amComparator) Applies(lhs, rhs *xdiff.Item) bool {
	if !lhs.IsReg() || !rhs.IsReg() {
		return false
	}
	if path.Base(lhs.ShortName()) != "Makefile" || path.Base(rhs.ShortName()) != "Makefile" {
		return false
	}
	lb, err := lhs.ResolveContent()
	if err != nil {
		return false
	}
	rb, err := rhs.ResolveContent()
	if err != nil {
		return false
	}
	return anyContains(firstLines(lb, 5, 132), "generated by automake") &&
		anyContains(firstLines(rb, 5, 132), "generated by automake")
}

func (amComparator) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lb, err := c.Lhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rb, err := c.Rhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}

	ln := canonicalizeAutomake(string(lb))
	rn := canonicalizeAutomake(string(rb))

	if ln == rn {
		return xdiff.Same, nil
	}
	logUnifiedDiff(c, c.Lhs.Name(), c.Rhs.Name(), ln, rn)
	return xdiff.Different, nil
}

func canonicalizeAutomake(s string) string {
	s = modversionRe.ReplaceAllString(s, "MODVERSION = <MODVERSION>")
	s = buildinfoRe.ReplaceAllString(s, "BUILDINFO = <BUILDINFO>")
	s = blot.Blot(s)
	return s
}
