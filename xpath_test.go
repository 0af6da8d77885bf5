// xpath_test.go - extended path join/split tests
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

func TestJoinSplitRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	cases := []struct {
		parent, sep, child string
	}{
		{"/srv/pkg.tar", SepTar, "usr/bin/foo"},
		{"/srv/lib.a", SepAr, "module.o"},
		{"/srv/out.tar{gzip}{gzipcontent}", SepTar, "etc/passwd"},
	}

	for _, c := range cases {
		joined := Join(c.parent, c.sep, c.child)
		prefix, sep, short := Split(joined)
		assert(prefix == c.parent, "prefix: exp %q, saw %q", c.parent, prefix)
		assert(sep == c.sep, "sep: exp %q, saw %q", c.sep, sep)
		assert(short == c.child, "short: exp %q, saw %q", c.child, short)
	}
}

func TestSplitBarePath(t *testing.T) {
	assert := newAsserter(t)

	prefix, sep, short := Split("foo.txt")
	assert(prefix == "", "prefix: exp empty, saw %q", prefix)
	assert(sep == SepDir, "sep: exp SepDir, saw %q", sep)
	assert(short == "foo.txt", "short: exp foo.txt, saw %q", short)
}

func TestShortName(t *testing.T) {
	assert := newAsserter(t)

	nm := Join("/a/b.tar", SepTar, "c/d.txt")
	assert(ShortName(nm) == "c/d.txt", "exp c/d.txt, saw %q", ShortName(nm))
}

func TestContentName(t *testing.T) {
	assert := newAsserter(t)
	assert(ContentName("gzip") == "{gzipcontent}", "exp {gzipcontent}, saw %q", ContentName("gzip"))
}
