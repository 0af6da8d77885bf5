// collect_reporter.go -- buckets xdiff.Reporter events for the
// "expect" command, playing the role go-fio's cmp.Difference map
// (LeftOnly/RightOnly/Diff/Same/Funny) used to play against the old
// single-pass DirCmp engine.

package main

import (
	"strings"
)

// collectReporter implements xdiff.Reporter, bucketing every resolved
// verdict by name so "expect" can assert set-equality against a
// script's lo=/ro=/diff=/same=/funny= lists.
type collectReporter struct {
	lhsRoot, rhsRoot string

	LeftOnly  []string
	RightOnly []string
	DiffNames []string
	SameNames []string
	Funny     []string
}

func newCollectReporter(lhsRoot, rhsRoot string) *collectReporter {
	return &collectReporter{lhsRoot: lhsRoot, rhsRoot: rhsRoot}
}

// display strips whichever tree root prefixes 'name' so the resulting
// string matches what a script author writes in an "expect" list
// (a path relative to lhs/rhs, archive separators and all).
func (r *collectReporter) display(name string) string {
	for _, root := range []string{r.lhsRoot, r.rhsRoot} {
		if root == "" {
			continue
		}
		if name == root {
			return "."
		}
		if strings.HasPrefix(name, root+"/") {
			return name[len(root)+1:]
		}
	}
	return name
}

func (r *collectReporter) Same(name string) {
	r.SameNames = append(r.SameNames, r.display(name))
}

func (r *collectReporter) Different(name, reason string) {
	d := r.display(name)
	switch {
	case strings.Contains(reason, "no mate on right"):
		r.LeftOnly = append(r.LeftOnly, d)
	case strings.Contains(reason, "no mate on left"):
		r.RightOnly = append(r.RightOnly, d)
	default:
		r.DiffNames = append(r.DiffNames, d)
	}
}

func (r *collectReporter) Indeterminate(name string) {
	r.Funny = append(r.Funny, r.display(name))
}

// Diff renders alongside Different; the scripted DSL only asserts
// which names settled which verdict, not the rendered text, so this
// is a no-op sink.
func (r *collectReporter) Diff(name, unified string) {
}
