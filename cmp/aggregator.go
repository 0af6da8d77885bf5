// aggregator.go - generic outer-join + recursive descent over a container
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
	"fmt"

	"github.com/opencoff/xdiff"
	"github.com/opencoff/xdiff/box"
)

// aggregator drives one directory or archive adapter through the
// mount/join/recurse/teardown cycle common to every container format:
// directory, ar, cpio, tar, zip, gzip, bz2, xz. One instance is built
// per adapter by NewAggregator and reused across every Comparison pair
// the adapter Applies to.
type aggregator struct {
	adapter xdiff.Adapter
	name    string
}

// NewAggregator wraps a container Adapter as a Comparator. The same
// helper serves every aggregate format; what differs is only which
// Adapter it drives.
func NewAggregator(adapter xdiff.Adapter, name string) xdiff.Comparator {
	return &aggregator{adapter: adapter, name: name}
}

func (a *aggregator) Name() string { return a.name }

func (a *aggregator) Applies(lhs, rhs *xdiff.Item) bool {
	return a.adapter.Applies(lhs) && a.adapter.Applies(rhs)
}

// Compare mounts both sides independently - the left item's content
// feeds the left Open, the right item's content feeds the right Open,
// never the other way around, which is the fix a mixed-up cpio
// comparator would otherwise need - then performs a left outer join
// (missing-on-right), a right outer join (missing-on-left) and an
// inner join (recursive Dispatch over every matched pair), tearing
// down both sessions on every exit path.
func (a *aggregator) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lsess, err := a.adapter.Open(c.Lhs)
	if err != nil {
		return xdiff.Indeterminate, err
	}
	defer lsess.Close()

	rsess, err := a.adapter.Open(c.Rhs)
	if err != nil {
		return xdiff.Indeterminate, err
	}
	defer rsess.Close()

	c.Lhs.SetBox(a.adapter)
	c.Rhs.SetBox(a.adapter)
	c.Lhs.SetSession(lsess)
	c.Rhs.SetSession(rsess)

	lkeys, err := a.adapter.Keys(lsess)
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rkeys, err := a.adapter.Keys(rsess)
	if err != nil {
		return xdiff.Indeterminate, err
	}

	lset := make(map[string]bool, len(lkeys))
	for _, k := range lkeys {
		lset[k] = true
	}
	rset := make(map[string]bool, len(rkeys))
	for _, k := range rkeys {
		rset[k] = true
	}

	overall := xdiff.Same

	// Left outer join: every left member either has a mate on the
	// right (spooled as a child Comparison for the inner join below)
	// or it doesn't (Different, no recursion possible).
	for _, k := range lkeys {
		lname := xdiff.Join(c.Lhs.Name(), a.adapter.Sep(), k)
		if _, ignored := c.Ignore.Ignoring(lname); ignored {
			continue
		}
		litem := c.Registry.FindOrCreate(lname, c.Lhs)

		if !rset[k] {
			if c.Reporter != nil {
				c.Reporter.Different(lname, a.name+": no mate on right")
			}
			overall = xdiff.Different
			if c.ExitASAP {
				return xdiff.Different, nil
			}
			continue
		}

		rname := xdiff.Join(c.Rhs.Name(), a.adapter.Sep(), k)
		ritem := c.Registry.FindOrCreate(rname, c.Rhs)
		c.Child(litem, ritem)
	}

	// Right outer join: members that exist only on the right.
	for _, k := range rkeys {
		if lset[k] {
			continue
		}
		rname := xdiff.Join(c.Rhs.Name(), a.adapter.Sep(), k)
		if _, ignored := c.Ignore.Ignoring(rname); ignored {
			continue
		}
		if c.Reporter != nil {
			c.Reporter.Different(rname, a.name+": no mate on left")
		}
		overall = xdiff.Different
		if c.ExitASAP {
			return xdiff.Different, nil
		}
	}

	// Inner join: recurse into every matched pair.
	for _, child := range c.Children {
		v, err := xdiff.Dispatch(child)
		if err != nil {
			return xdiff.Indeterminate, err
		}
		switch v {
		case xdiff.Different:
			overall = xdiff.Different
			if c.ExitASAP {
				return xdiff.Different, nil
			}
		case xdiff.Indeterminate:
			return xdiff.Indeterminate, fmt.Errorf("cmp: indeterminate at %s", child)
		}
	}

	// Zip carries an archive-level comment and per-member metadata
	// beyond the generic Adapter surface; check it here rather than
	// as a separate chain entry since it only makes sense scoped to
	// this aggregation.
	if zl, ok := a.adapter.(box.ZipContainer); ok {
		if zl.ArchiveComment(lsess) != zl.ArchiveComment(rsess) {
			if c.Reporter != nil {
				c.Reporter.Different(c.Lhs.Name(), "zip: archive comment mismatch")
			}
			overall = xdiff.Different
		}
		for _, k := range lkeys {
			if !rset[k] {
				continue
			}
			lm, lok := zl.MemberZipMeta(lsess, k)
			rm, rok := zl.MemberZipMeta(rsess, k)
			if lok != rok {
				continue
			}
			if lok && rok && lm != rm {
				lname := xdiff.Join(c.Lhs.Name(), a.adapter.Sep(), k)
				if c.Reporter != nil {
					c.Reporter.Different(lname, "zip: member metadata mismatch")
				}
				overall = xdiff.Different
				if c.ExitASAP {
					return xdiff.Different, nil
				}
			}
		}
	}

	return overall, nil
}
