// kernelconf.go - Linux kernel auto-generated config comparator
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
	"strings"

	"github.com/opencoff/xdiff"
)

var kernelConfTrigger = map[string]string{
	"auto.conf":  "Automatically generated make config",
	"autoconf.h": "Automatically generated C config",
}

// kernelConfComparator matches the kernel build system's generated
// auto.conf/autoconf.h, which both carry a fixed timestamp line near
// the top that would otherwise make two identical builds compare
// Different.
type kernelConfComparator struct{}

func NewKernelConfComparator() xdiff.Comparator { return kernelConfComparator{} }

func (kernelConfComparator) Name() string { return "kernel-conf" }

func (kernelConfComparator) Applies(lhs, rhs *xdiff.Item) bool {
	lb := path.Base(lhs.ShortName())
	rb := path.Base(rhs.ShortName())
	if lb != rb {
		return false
	}
	trigger, ok := kernelConfTrigger[lb]
	if !ok {
		return false
	}
	if !lhs.IsReg() || !rhs.IsReg() {
		return false
	}
	lc, err := lhs.ResolveContent()
	if err != nil {
		return false
	}
	rc, err := rhs.ResolveContent()
	if err != nil {
		return false
	}
	return anyContains(firstLines(lc, 8, 4096), trigger) && anyContains(firstLines(rc, 8, 4096), trigger)
}

func (kernelConfComparator) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lb, err := c.Lhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rb, err := c.Rhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}

	ln := dropFourthLine(string(lb))
	rn := dropFourthLine(string(rb))
	if ln == rn {
		return xdiff.Same, nil
	}
	logUnifiedDiff(c, c.Lhs.Name(), c.Rhs.Name(), ln, rn)
	return xdiff.Different, nil
}

// dropFourthLine removes the 4th line (a generation timestamp) from
// 's', leaving the rest of the file untouched.
func dropFourthLine(s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) < 4 {
		return s
	}
	out := make([]string, 0, len(lines)-1)
	out = append(out, lines[:3]...)
	out = append(out, lines[4:]...)
	return strings.Join(out, "\n")
}
