// dir_test.go - Directory adapter tests
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
	"os"
	"path/filepath"
	"testing"

	"github.com/opencoff/xdiff"
)

func TestDirectoryListsAndReadsMembers(t *testing.T) {
	assert := newAsserter(t)

	tmp := t.TempDir()
	assert(os.WriteFile(filepath.Join(tmp, "a.txt"), []byte("hello"), 0600) == nil, "write a.txt")
	assert(os.WriteFile(filepath.Join(tmp, "b.txt"), []byte("world"), 0600) == nil, "write b.txt")
	assert(os.Mkdir(filepath.Join(tmp, "sub"), 0700) == nil, "mkdir sub")

	reg := xdiff.NewItemRegistry()
	it := reg.FindOrCreate(tmp, nil)

	d := NewDirectory()
	assert(d.Applies(it), "directory adapter should apply to a real directory")

	sess, err := d.Open(it)
	assert(err == nil, "open: %s", err)
	defer sess.Close()

	keys, err := d.Keys(sess)
	assert(err == nil, "keys: %s", err)
	assert(len(keys) == 3, "exp 3 entries, saw %d", len(keys))

	b, err := d.MemberContent(sess, "a.txt")
	assert(err == nil, "content: %s", err)
	assert(string(b) == "hello", "exp hello, saw %q", string(b))

	isDir, err := d.MemberIsDir(sess, "sub")
	assert(err == nil, "isdir: %s", err)
	assert(isDir, "sub should be reported as a directory")
}

func TestDirectoryDoesNotApplyToRegularFile(t *testing.T) {
	assert := newAsserter(t)

	tmp := t.TempDir()
	fn := filepath.Join(tmp, "a.txt")
	assert(os.WriteFile(fn, []byte("hello"), 0600) == nil, "write")

	reg := xdiff.NewItemRegistry()
	it := reg.FindOrCreate(fn, nil)

	d := NewDirectory()
	assert(!d.Applies(it), "directory adapter should not apply to a regular file")
}
