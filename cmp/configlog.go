// configlog.go - autoconf config.log/config.status/config.h comparator
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

var configLogTrigger = map[string]string{
	"config.log":    "This file contains any messages produced by compilers",
	"config.status": "Generated by configure",
	"config.h":      "Generated from config.h.in",
}

var tempFileRe = regexp.MustCompile(`/tmp/cc[A-Za-z0-9]+\.(o|s)\b`)
var configModversionRe = regexp.MustCompile(`(?m)^MODVERSION\s*=.*$`)

// configLogComparator matches autoconf-generated config.log,
// config.status and config.h files by basename plus the matching
// trigger phrase each carries near the top of the file.
type configLogComparator struct{}

func NewConfigLogComparator() xdiff.Comparator { return configLogComparator{} }

func (configLogComparator) Name() string { return "config-log" }

func (configLogComparator) Applies(lhs, rhs *xdiff.Item) bool {
	lb := path.Base(lhs.ShortName())
	rb := path.Base(rhs.ShortName())
	if lb != rb {
		return false
	}
	trigger, ok := configLogTrigger[lb]
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

func (configLogComparator) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lb, err := c.Lhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rb, err := c.Rhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}

	ln := canonicalizeConfigLog(string(lb))
	rn := canonicalizeConfigLog(string(rb))
	if ln == rn {
		return xdiff.Same, nil
	}
	logUnifiedDiff(c, c.Lhs.Name(), c.Rhs.Name(), ln, rn)
	return xdiff.Different, nil
}

func canonicalizeConfigLog(s string) string {
	s = tempFileRe.ReplaceAllString(s, "/tmp/cc<TMP>.$1")
	s = configModversionRe.ReplaceAllString(s, "MODVERSION = <MODVERSION>")
	s = blot.Blot(s)
	return s
}
