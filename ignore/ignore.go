// ignore.go - shell-glob ignore matcher
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

// Package ignore compiles a set of shell-glob patterns once and
// matches extended path names against them.
package ignore

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher holds a compiled set of glob patterns.
type Matcher struct {
	pats []string
}

// New compiles 'pats' into a Matcher. Patterns are validated eagerly
// so a malformed glob fails at construction rather than at match time.
func New(pats []string) (*Matcher, error) {
	m := &Matcher{pats: make([]string, 0, len(pats))}
	for _, p := range pats {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("ignore: invalid glob %q", p)
		}
		m.pats = append(m.pats, p)
	}
	return m, nil
}

// Load reads one or more ignore files, each non-empty, non-comment
// line treated as a glob pattern, and concatenates them into a single
// Matcher.
func Load(paths ...string) (*Matcher, error) {
	var pats []string
	for _, p := range paths {
		fd, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("ignore: open %s: %w", p, err)
		}
		sc := bufio.NewScanner(fd)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			pats = append(pats, line)
		}
		err = sc.Err()
		fd.Close()
		if err != nil {
			return nil, fmt.Errorf("ignore: read %s: %w", p, err)
		}
	}
	return New(pats)
}

// Ignoring returns the first pattern matching 'name' (basename
// matched against each glob via doublestar, which also lets a pattern
// containing '/' match a full path component chain), and whether any
// pattern matched at all.
func (m *Matcher) Ignoring(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	name = strings.TrimPrefix(name, "/")
	for _, p := range m.pats {
		if ok, _ := doublestar.Match(p, name); ok {
			return p, true
		}
		// also try against the basename so a bare "*.pyc" style
		// pattern matches regardless of directory depth.
		base := name
		if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
			base = name[idx+1:]
		}
		if base != name {
			if ok, _ := doublestar.Match(p, base); ok {
				return p, true
			}
		}
	}
	return "", false
}

// Empty reports whether this matcher has no patterns.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.pats) == 0
}
