// textutil.go - shared helpers for the text-normalizing comparators
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
)

// firstLines returns up to 'n' lines from 'b', each truncated to
// 'maxLen' bytes, for the "trigger phrase in the first K lines" style
// Applies checks used by AMComparator/ConfigLogComparator/
// KernelConfComparator.
func firstLines(b []byte, n, maxLen int) []string {
	s := string(b)
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if len(l) > maxLen {
			l = l[:maxLen]
		}
		out[i] = l
	}
	return out
}

func anyContains(lines []string, phrase string) bool {
	for _, l := range lines {
		if strings.Contains(l, phrase) {
			return true
		}
	}
	return false
}
