// dir.go - directory container adapter
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
	"sort"

	"github.com/opencoff/xdiff"
)

// Directory is the adapter for plain filesystem directories. Unlike
// the archive adapters it has no magic-byte detection: Applies
// consults the cached/resolved stat record.
type Directory struct{}

func (Directory) Name() string { return "dir" }
func (Directory) Sep() string  { return xdiff.SepDir }

func (Directory) Applies(it *xdiff.Item) bool {
	return it.IsDir()
}

type dirSession struct {
	path string
}

func (dirSession) Close() error { return nil }

func (Directory) Open(it *xdiff.Item) (xdiff.Session, error) {
	return &dirSession{path: it.Name()}, nil
}

func (Directory) Keys(sess xdiff.Session) ([]string, error) {
	d := sess.(*dirSession)
	ents, err := os.ReadDir(d.path)
	if err != nil {
		return nil, &Error{"readdir", d.path, err}
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		names = append(names, e.Name())
	}
	// os.ReadDir already returns entries sorted by name; no further
	// ordering guarantee is promised or required by the spec.
	sort.Strings(names)
	return names, nil
}

func (Directory) path(sess xdiff.Session, short string) string {
	d := sess.(*dirSession)
	return filepath.Join(d.path, short)
}

func (a Directory) MemberContent(sess xdiff.Session, short string) ([]byte, error) {
	p := a.path(sess, short)
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, &Error{"read", p, err}
	}
	return b, nil
}

func (a Directory) MemberSize(sess xdiff.Session, short string) (int64, error) {
	fi, err := a.MemberStat(sess, short)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (a Directory) MemberStat(sess xdiff.Session, short string) (*xdiff.Info, error) {
	p := a.path(sess, short)
	fi, err := xdiff.Lstat(p)
	if err != nil {
		return nil, &Error{"lstat", p, err}
	}
	return fi, nil
}

func (a Directory) MemberIsReg(sess xdiff.Session, short string) (bool, error) {
	fi, err := a.MemberStat(sess, short)
	if err != nil {
		return false, err
	}
	return fi.IsRegular(), nil
}

func (a Directory) MemberIsDir(sess xdiff.Session, short string) (bool, error) {
	fi, err := a.MemberStat(sess, short)
	if err != nil {
		return false, err
	}
	return fi.IsDir(), nil
}

func (a Directory) MemberIsLnk(sess xdiff.Session, short string) (bool, error) {
	fi, err := a.MemberStat(sess, short)
	if err != nil {
		return false, err
	}
	return fi.Mode()&os.ModeSymlink != 0, nil
}

func (a Directory) MemberLink(sess xdiff.Session, short string) (string, error) {
	p := a.path(sess, short)
	target, err := os.Readlink(p)
	if err != nil {
		return "", &Error{"readlink", p, err}
	}
	return target, nil
}

func (a Directory) MemberInode(sess xdiff.Session, short string) (uint64, error) {
	fi, err := a.MemberStat(sess, short)
	if err != nil {
		return 0, err
	}
	return fi.Ino, nil
}

func (a Directory) MemberDevice(sess xdiff.Session, short string) (uint64, error) {
	fi, err := a.MemberStat(sess, short)
	if err != nil {
		return 0, err
	}
	return fi.Dev, nil
}

var _ xdiff.UnixContainer = dirUnix{}

// dirUnix exposes Directory as a UnixContainer (it preserves mode,
// uid/gid and symlink targets exactly like tar/cpio).
type dirUnix struct{ Directory }

func (dirUnix) IsUnixContainer() {}

// NewDirectory returns the Directory adapter wrapped as a UnixContainer.
func NewDirectory() xdiff.UnixContainer {
	return dirUnix{}
}
