// comparison_test.go - Dispatch/Comparison tests
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

import "testing"

// stubComparator is a minimal Comparator with a fixed Applies result
// and a fixed verdict, used to exercise Dispatch's chain-walking logic in isolation from any
// real format adapter.
type stubComparator struct {
	name    string
	applies bool
	verdict Verdict
}

func (s stubComparator) Name() string                      { return s.name }
func (s stubComparator) Applies(lhs, rhs *Item) bool        { return s.applies }
func (s stubComparator) Compare(c *Comparison) (Verdict, error) { return s.verdict, nil }

func TestDispatchFirstApplicableWins(t *testing.T) {
	assert := newAsserter(t)

	reg := NewItemRegistry()
	lhs := reg.FindOrCreate("a", nil)
	rhs := reg.FindOrCreate("b", nil)

	chain := []Comparator{
		stubComparator{"skip", false, Same},
		stubComparator{"settle", true, Different},
		stubComparator{"never-reached", true, Same},
	}
	c := NewComparison(reg, lhs, rhs, chain, nil, false, 0, nil)
	v, err := Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == Different, "exp Different, saw %s", v)
}

func TestDispatchFallsThroughToIndeterminate(t *testing.T) {
	assert := newAsserter(t)

	reg := NewItemRegistry()
	lhs := reg.FindOrCreate("a", nil)
	rhs := reg.FindOrCreate("b", nil)

	chain := []Comparator{
		stubComparator{"indeterminate", true, Indeterminate},
	}
	c := NewComparison(reg, lhs, rhs, chain, nil, false, 0, nil)
	v, err := Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == Indeterminate, "exp Indeterminate, saw %s", v)
}

func TestComparisonListLengthMismatch(t *testing.T) {
	assert := newAsserter(t)

	reg := NewItemRegistry()
	parent := reg.FindOrCreate("parent", nil)

	l := &ComparisonList{Lhs: []string{"a", "b"}, Rhs: []string{"a"}}
	v, err := l.Compare(reg, parent, nil, nil, false, 0, nil)
	assert(err == nil, "%s", err)
	assert(v == Different, "exp Different on length mismatch, saw %s", v)
}

func TestIgnoreFlagHasAndString(t *testing.T) {
	assert := newAsserter(t)

	f := IGN_UID | IGN_XATTR
	assert(f.Has(IGN_UID), "should have IGN_UID")
	assert(!f.Has(IGN_GID), "should not have IGN_GID")
	assert(f.String() == "uid,xattr", "exp \"uid,xattr\", saw %q", f.String())
}
