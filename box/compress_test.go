// compress_test.go - gzip/bz2/xz adapter tests
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

package box

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/opencoff/xdiff"
)

func mkGzip(t *testing.T, content string) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("gzip write: %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %s", err)
	}
	return buf.Bytes()
}

func TestGzipAppliesAndDecodes(t *testing.T) {
	assert := newAsserter(t)

	raw := mkGzip(t, "hello, gzip")
	it := mkContentItem(raw)

	g := NewGzip()
	assert(g.Applies(it), "gzip should apply to a gzip stream")

	sess, err := g.Open(it)
	assert(err == nil, "open: %s", err)
	defer sess.Close()

	keys, err := g.Keys(sess)
	assert(err == nil, "keys: %s", err)
	assert(len(keys) == 1, "exp 1 key, saw %d", len(keys))
	assert(keys[0] == xdiff.ContentName("gzip"), "exp synthetic gzip member name, saw %s", keys[0])

	b, err := g.MemberContent(sess, keys[0])
	assert(err == nil, "content: %s", err)
	assert(string(b) == "hello, gzip", "exp decoded content, saw %q", string(b))
}

func TestGzipDoesNotApplyToPlainContent(t *testing.T) {
	assert := newAsserter(t)

	it := mkContentItem([]byte("just some text"))
	g := NewGzip()
	assert(!g.Applies(it), "gzip should not apply to non-gzip content")
}
