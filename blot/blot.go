// blot.go - date/time canonicalization table
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

// Package blot canonicalizes date/time renderings embedded in build
// artifacts (Makefiles, config logs, kernel autoconf headers, ...) to
// fixed placeholders so two builds taken at different moments compare
// textually equal.
package blot

import (
	"regexp"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

const (
	dow  = `(?:Sun|Mon|Tue|Wed|Thu|Fri|Sat)`
	moy  = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`
	lmoy = `(?:January|February|March|April|May|June|July|August|September|October|November|December)`
)

// table is ordered the same way as the eleven date_patterns this is
// ported from: more specific patterns must precede patterns they
// subsume, e.g. a full "Sun Feb 13 12:29:28 PST 2011" must blot before
// the bare "12:29:28" rule gets a chance to eat only the time portion.
var table = []rule{
	// "Sun Feb 13 12:29:28 PST 2011"
	{
		re:   regexp.MustCompile(dow + ` ` + moy + ` *\d{1,2} \d{2}:\d{2}:\d{2} (?:[A-Z]{2,5}) \d{4}`),
		repl: "Day Mon 00 00:00:00 LOC 2011",
	},
	// "Sun Feb 13 12:29:28 2011" (no zone)
	{
		re:   regexp.MustCompile(dow + ` ` + moy + ` *\d{1,2} \d{2}:\d{2}:\d{2} \d{4}`),
		repl: "Day Mon 00 00:00:00 2011",
	},
	// "13 FEB 2011 11:52"
	{
		re:   regexp.MustCompile(`(?i) *\d{1,2} (?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC) \d{4} \d{2}:\d{2}`),
		repl: "00 MON 2011 00:00",
	},
	// "April 7, 2011"
	{
		re:   regexp.MustCompile(lmoy + ` *\d{1,2},? \d{4}`),
		repl: "Month 00, 2011",
	},
	// "Wed Apr 13 2011"
	{
		re:   regexp.MustCompile(dow + ` ` + moy + ` *\d{1,2} *\d{4}`),
		repl: "Day Mon 00 2011",
	},
	// "Wed 13 Apr 2011"
	{
		re:   regexp.MustCompile(dow + ` *\d{1,2} *` + moy + ` *\d{4}`),
		repl: "Day 00 Mon 2011",
	},
	// "Wed 13 April 2011"
	{
		re:   regexp.MustCompile(dow + ` *\d{1,2} *` + lmoy + ` *\d{4}`),
		repl: "Day 00 Month 2011",
	},
	// "2011-02-13"
	{
		re:   regexp.MustCompile(`20\d{2}-*\d{2}-*\d{2}`),
		repl: "2011-00-00",
	},
	// "Feb 2011"
	{
		re:   regexp.MustCompile(moy + ` \d{4}`),
		repl: "Mon 2011",
	},
	// bare time: "12:29:28"
	{
		re:   regexp.MustCompile(`\d{2}:\d{2}:\d{2}`),
		repl: "00:00:00",
	},
	// "2011-07-11T170033Z"
	{
		re:   regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{6}Z`),
		repl: "00000000T000000Z",
	},
}

// Blot applies every rule in order to 's' and returns the canonical
// form. A regexp that can't match valid UTF-8 in 's' is simply a
// no-op for that rule rather than aborting the pipeline - the table
// is applied to text already decoded by the caller, so this only
// matters for inputs with embedded non-decodable byte runs.
func Blot(s string) string {
	for _, r := range table {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}

// BlotBytes is a byte-slice convenience wrapper around Blot for
// comparators that hold content as []byte.
func BlotBytes(b []byte) []byte {
	return []byte(Blot(string(b)))
}
