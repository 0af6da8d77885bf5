// zip_test.go - zip adapter tests
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
	"archive/zip"
	"bytes"
	"testing"
)

func mkZip(t *testing.T, comment string, files map[string]string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %s", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %s", name, err)
		}
	}
	if err := w.SetComment(comment); err != nil {
		t.Fatalf("zip comment: %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %s", err)
	}
	return buf.Bytes()
}

func TestZipAppliesAndListsMembers(t *testing.T) {
	assert := newAsserter(t)

	raw := mkZip(t, "a comment", map[string]string{
		"x.txt": "one",
		"y.txt": "two",
	})
	it := mkContentItem(raw)

	z := NewZip()
	assert(z.Applies(it), "zip should apply to a zip stream")

	sess, err := z.Open(it)
	assert(err == nil, "open: %s", err)
	defer sess.Close()

	keys, err := z.Keys(sess)
	assert(err == nil, "keys: %s", err)
	assert(len(keys) == 2, "exp 2 members, saw %d", len(keys))

	zc, ok := z.(ZipContainer)
	assert(ok, "NewZip() should satisfy ZipContainer")
	assert(zc.ArchiveComment(sess) == "a comment", "exp archive comment preserved")

	meta, ok := zc.MemberZipMeta(sess, "x.txt")
	assert(ok, "expected zip metadata for x.txt")
	_ = meta
}

func TestZipDoesNotApplyToPlainContent(t *testing.T) {
	assert := newAsserter(t)

	it := mkContentItem([]byte("not a zip"))
	z := NewZip()
	assert(!z.Applies(it), "zip should not apply to non-zip content")
}
