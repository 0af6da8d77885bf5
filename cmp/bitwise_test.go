// bitwise_test.go - Bitwise comparator tests
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

func TestBitwiseEqual(t *testing.T) {
	assert := newAsserter(t)

	tmp := t.TempDir()
	lhs := filepath.Join(tmp, "a")
	rhs := filepath.Join(tmp, "b")
	assert(mkfilex(lhs, "the quick brown fox") == nil, "mkfile")
	assert(mkfilex(rhs, "the quick brown fox") == nil, "mkfile")

	c := newTestComparison(lhs, rhs, []xdiff.Comparator{NewBitwise()})
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Same, "exp Same, saw %s", v)
}

func TestBitwiseDifferentSize(t *testing.T) {
	assert := newAsserter(t)

	tmp := t.TempDir()
	lhs := filepath.Join(tmp, "a")
	rhs := filepath.Join(tmp, "b")
	assert(mkfilex(lhs, "short") == nil, "mkfile")
	assert(mkfilex(rhs, "a good bit longer") == nil, "mkfile")

	// Bitwise never settles Different on its own - a mismatch just
	// means some other comparator further down the chain gets a
	// chance (e.g. ELF, or eventually Fail).
	c := newTestComparison(lhs, rhs, []xdiff.Comparator{NewBitwise()})
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Indeterminate, "exp Indeterminate, saw %s", v)
}

func TestBitwiseSameSizeDifferentContent(t *testing.T) {
	assert := newAsserter(t)

	tmp := t.TempDir()
	lhs := filepath.Join(tmp, "a")
	rhs := filepath.Join(tmp, "b")
	assert(mkfilex(lhs, "aaaaa") == nil, "mkfile")
	assert(mkfilex(rhs, "bbbbb") == nil, "mkfile")

	c := newTestComparison(lhs, rhs, []xdiff.Comparator{NewBitwise()})
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Indeterminate, "exp Indeterminate, saw %s", v)
}
