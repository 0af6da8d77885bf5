// mapfile_test.go - MapComparator tests
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
	"path/filepath"
	"testing"

	"github.com/opencoff/xdiff"
)

const mapFixtureA = "Archive member included to satisfy reference\nfoo.o tmp-123.o\n"
const mapFixtureB = "Archive member included to satisfy reference\nfoo.o tmp-456.o\n"
const mapFixtureC = "Archive member included to satisfy reference\nfoo.o bar.o\n"

func TestMapComparatorNormalizesTempCounters(t *testing.T) {
	assert := newAsserter(t)

	tmp := t.TempDir()
	lhs := filepath.Join(tmp, "a.map")
	rhs := filepath.Join(tmp, "b.map")
	assert(mkfilex(lhs, mapFixtureA) == nil, "mkfile")
	assert(mkfilex(rhs, mapFixtureB) == nil, "mkfile")

	c := newTestComparison(lhs, rhs, []xdiff.Comparator{NewMapComparator()})
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Same, "exp Same, saw %s", v)
}

func TestMapComparatorRealDifferenceIsIndeterminate(t *testing.T) {
	assert := newAsserter(t)

	tmp := t.TempDir()
	lhs := filepath.Join(tmp, "a.map")
	rhs := filepath.Join(tmp, "b.map")
	assert(mkfilex(lhs, mapFixtureA) == nil, "mkfile")
	assert(mkfilex(rhs, mapFixtureC) == nil, "mkfile")

	c := newTestComparison(lhs, rhs, []xdiff.Comparator{NewMapComparator()})
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Indeterminate, "exp Indeterminate, saw %s", v)
}

func TestMapComparatorDoesNotApplyToPlainFiles(t *testing.T) {
	assert := newAsserter(t)

	tmp := t.TempDir()
	a := filepath.Join(tmp, "a.txt")
	b := filepath.Join(tmp, "b.txt")
	assert(mkfilex(a, "not a map file") == nil, "mkfile")
	assert(mkfilex(b, "not a map file") == nil, "mkfile")

	c := newTestComparison(a, b, []xdiff.Comparator{NewMapComparator()})
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Indeterminate, "exp Indeterminate (chain fallthrough), saw %s", v)
}
