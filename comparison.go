// comparison.go - the unit of work dispatched through the comparator chain
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
	"fmt"
	"strings"

	"github.com/opencoff/xdiff/ignore"
)

// IgnoreFlag captures the filesystem attributes a Comparison should
// not hold against a pair of entries. Carried over from go-fio's
// cmp.IgnoreFlag bitmask rather than a single ignore-ownerships bool,
// since the Inode/metadata comparators can use the finer grain for
// free.
type IgnoreFlag uint

const (
	IGN_UID      IgnoreFlag = 1 << iota // ignore uid differences
	IGN_GID                             // ignore gid differences
	IGN_HARDLINK                        // ignore hardlink-count differences
	IGN_XATTR                           // ignore xattr differences
)

func (f IgnoreFlag) String() string {
	var z []string
	if f&IGN_UID > 0 {
		z = append(z, "uid")
	}
	if f&IGN_GID > 0 {
		z = append(z, "gid")
	}
	if f&IGN_HARDLINK > 0 {
		z = append(z, "links")
	}
	if f&IGN_XATTR > 0 {
		z = append(z, "xattr")
	}
	return strings.Join(z, ",")
}

func (f IgnoreFlag) Has(bit IgnoreFlag) bool {
	return f&bit != 0
}

// Comparison is an ordered pair of Items plus the policy under which
// they are judged. It is created by the driver (top-level) or by an
// aggregator comparator during expansion (child), consumed exactly
// once by Dispatch(), which resets its pair's content caches once a
// comparator settles it.
type Comparison struct {
	Lhs, Rhs *Item

	Registry *ItemRegistry
	Chain    []Comparator
	Ignore   *ignore.Matcher
	ExitASAP bool
	IgnoreOwn IgnoreFlag

	// Children accumulates child Comparisons spooled by an
	// aggregator's outer join, consumed by its inner join.
	Children []*Comparison

	// Reporter receives verdict/log events as comparators resolve.
	// nil is valid - callers that don't want logging pass nil.
	Reporter Reporter
}

// Reporter is the narrow logging surface the driver and aggregators
// push verdict/diff events through; cmd/xdiff's logger adapts this to
// opencoff/go-logger's level scheme.
type Reporter interface {
	Same(name string)
	Different(name, reason string)
	Indeterminate(name string)
	Diff(name, unified string)
}

// NewComparison builds a root-level Comparison. Child comparisons
// spooled by aggregators are built by Child (below) so they can
// inherit the parent's chain/ignore/flags without re-threading them
// through this constructor.
func NewComparison(reg *ItemRegistry, lhs, rhs *Item, chain []Comparator, ign *ignore.Matcher, exitASAP bool, ignoreOwn IgnoreFlag, rep Reporter) *Comparison {
	return &Comparison{
		Lhs:       lhs,
		Rhs:       rhs,
		Registry:  reg,
		Chain:     chain,
		Ignore:    ign,
		ExitASAP:  exitASAP,
		IgnoreOwn: ignoreOwn,
		Reporter:  rep,
	}
}

// Child spools a new Comparison onto c.Children inheriting c's chain,
// ignore set, exit policy and ownership flags - the shape every
// aggregator comparator needs for its outer-join/recursion step.
func (c *Comparison) Child(lhs, rhs *Item) *Comparison {
	ch := &Comparison{
		Lhs:       lhs,
		Rhs:       rhs,
		Registry:  c.Registry,
		Chain:     c.Chain,
		Ignore:    c.Ignore,
		ExitASAP:  c.ExitASAP,
		IgnoreOwn: c.IgnoreOwn,
		Reporter:  c.Reporter,
	}
	c.Children = append(c.Children, ch)
	return ch
}

// Reset clears the content caches of both sides of this Comparison;
// the driver calls this once a terminal verdict has been produced.
func (c *Comparison) Reset() {
	c.Lhs.Reset()
	c.Rhs.Reset()
}

func (c *Comparison) String() string {
	return fmt.Sprintf("%s <-> %s", c.Lhs.Name(), c.Rhs.Name())
}

// ComparisonList is two positionally-aligned sequences of extended
// paths; unequal lengths are Different without looking at content.
type ComparisonList struct {
	Lhs, Rhs []string
}

// Compare first drops every name the ignore matcher covers from each
// sequence, then runs a Comparison per index after an equal-length
// check on what remains; ignored names never take part in the length
// check or get a Comparison built for them.
func (l *ComparisonList) Compare(reg *ItemRegistry, parent *Item, chain []Comparator, ign *ignore.Matcher, exitASAP bool, ignoreOwn IgnoreFlag, rep Reporter) (Verdict, error) {
	keep := func(names []string) []string {
		out := make([]string, 0, len(names))
		for _, nm := range names {
			if _, ignored := ign.Ignoring(nm); !ignored {
				out = append(out, nm)
			}
		}
		return out
	}
	lnames, rnames := keep(l.Lhs), keep(l.Rhs)

	if len(lnames) != len(rnames) {
		if rep != nil {
			rep.Different(parent.Name(), "comparison-list length mismatch")
		}
		return Different, nil
	}

	overall := Same
	for i := range lnames {
		lhs := reg.FindOrCreate(lnames[i], parent)
		rhs := reg.FindOrCreate(rnames[i], parent)
		c := NewComparison(reg, lhs, rhs, chain, ign, exitASAP, ignoreOwn, rep)

		v, err := Dispatch(c)
		if err != nil {
			return Indeterminate, err
		}
		switch v {
		case Different:
			overall = Different
			if exitASAP {
				return Different, nil
			}
		case Indeterminate:
			return Indeterminate, fmt.Errorf("xdiff: indeterminate at %s", c)
		}
	}
	return overall, nil
}

// Dispatch runs the chain dispatch loop for a single Comparison: the
// first comparator whose Applies holds on both items produces the
// verdict (Same/Different reset the pair's caches and return
// immediately; Indeterminate advances to the next comparator).
// Falling off the end of the chain is Indeterminate - fatal at the
// top level, expected only when a test supplies a truncated chain.
func Dispatch(c *Comparison) (Verdict, error) {
	for _, cmp := range c.Chain {
		if !cmp.Applies(c.Lhs, c.Rhs) {
			continue
		}
		v, err := cmp.Compare(c)
		if err != nil {
			return Indeterminate, err
		}
		switch v {
		case Same:
			if c.Reporter != nil {
				c.Reporter.Same(c.Lhs.Name())
			}
			c.Reset()
			return Same, nil
		case Different:
			if c.Reporter != nil {
				c.Reporter.Different(c.Lhs.Name(), cmp.Name())
			}
			c.Reset()
			return Different, nil
		}
		// Indeterminate: fall through to the next comparator.
	}
	if c.Reporter != nil {
		c.Reporter.Indeterminate(c.Lhs.Name())
	}
	return Indeterminate, nil
}
