// xpath.go - extended path join/split across container boundaries
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

package xdiff

import (
	"strings"
)

// Separator tokens tag the containing adapter of the segment that
// follows them. "/" is the plain filesystem separator; the rest are
// brace-delimited so they can never collide with a legal path
// component.
const (
	SepDir  = "/"
	SepAr   = "{ar}"
	SepCpio = "{cpio}"
	SepTar  = "{tar}"
	SepZip  = "{zip}"
	SepGzip = "{gzip}"
	SepBz2  = "{bz2}"
	SepXz   = "{xz}"
)

// allSeps lists every separator token; Split looks for the
// brace-delimited ones first and falls back to SepDir.
var allSeps = []string{SepAr, SepCpio, SepTar, SepZip, SepGzip, SepBz2, SepXz, SepDir}

// ContentName returns the synthetic member name used by a
// content-only container (gzip/bz2/xz) for its single decoded member.
func ContentName(format string) string {
	return "{" + format + "content}"
}

// Join composes an extended path from a parent path, a separator
// token naming the child's container, and the child's short name.
func Join(parent, sep, child string) string {
	if parent == "" {
		return child
	}
	return parent + sep + child
}

// Split breaks an extended path into its penultimate extended-path
// prefix and the final short name, along with the separator token
// that preceded the short name (SepDir if none is found, i.e. 'name'
// is a bare top-level path). The last brace-delimited token wins over
// any later "/", since an archive member's short name may itself
// contain "/"; SepDir splits only a name with no brace token in it.
func Split(name string) (prefix, sep, short string) {
	bestIdx := -1
	bestSep := ""
	for _, s := range allSeps {
		if s == SepDir {
			continue
		}
		if idx := strings.LastIndex(name, s); idx > bestIdx {
			bestIdx = idx
			bestSep = s
		}
	}
	if bestIdx < 0 {
		bestIdx = strings.LastIndex(name, SepDir)
		bestSep = SepDir
	}

	if bestIdx < 0 {
		return "", SepDir, name
	}

	prefix = name[:bestIdx]
	short = name[bestIdx+len(bestSep):]
	return prefix, bestSep, short
}

// ShortName returns the final path component of an extended path -
// the member/file short name used for display and ignore matching.
func ShortName(name string) string {
	_, _, short := Split(name)
	return short
}
