// box.go - shared plumbing for container adapters
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

// Package box implements the concrete container adapters: directory
// and each supported archive/compression format. Every adapter here
// is a stateless strategy value satisfying xdiff.Adapter; mutable
// per-mount state lives on the Session returned by Open.
package box

import (
	"fmt"
	"io/fs"

	"github.com/opencoff/xdiff"
)

// Error is this package's descriptive error type: the Op/Src/Err part
// of the module's error shape (every box error names a single path, so
// there is no Dst field).
type Error struct {
	Op  string
	Src string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("box: %s '%s': %s", e.Op, e.Src, e.Err.Error())
}

func (e *Error) Unwrap() error { return e.Err }

var _ error = &Error{}

// member is the normalized record every archive/compression adapter
// stores for one entry, regardless of the underlying format's header
// shape. Non-goals forbid streaming: content is always fully
// materialized at parse time.
type member struct {
	content []byte

	mode fs.FileMode
	uid  int
	gid  int

	isReg, isDir, isLnk bool
	link                string

	inode, device uint64
}

func (m *member) toInfo(name string) *xdiff.Info {
	fi := &xdiff.Info{
		Mod:  m.mode,
		Uid:  uint32(m.uid),
		Gid:  uint32(m.gid),
		Ino:  m.inode,
		Dev:  m.device,
		Siz:  int64(len(m.content)),
		Nlink: 1,
	}
	fi.SetPath(name)
	return fi
}

// tableSession is the Session shared by every in-memory, fully-parsed
// container format (ar, cpio, tar, zip, and the single-member
// decompressors).
type tableSession struct {
	order []string
	table map[string]*member
}

func (s *tableSession) Close() error { return nil }

func (s *tableSession) get(short string) (*member, error) {
	m, ok := s.table[short]
	if !ok {
		return nil, fmt.Errorf("box: no such member %q", short)
	}
	return m, nil
}

// tableAdapter is the common Adapter implementation for every format
// whose members are parsed eagerly into a tableSession: ar, cpio,
// gzip, bz2, xz. tar and zip have their own adapters (tar.go, zip.go).
type tableAdapter struct {
	name  string
	sep   string
	magic func([]byte) bool
	parse func([]byte) (*tableSession, error)
}

func (a *tableAdapter) Name() string { return a.name }
func (a *tableAdapter) Sep() string  { return a.sep }

func (a *tableAdapter) Applies(it *xdiff.Item) bool {
	if it.IsDir() {
		return false
	}
	b, err := it.ResolveContent()
	if err != nil || len(b) == 0 {
		return false
	}
	return a.magic(b)
}

func (a *tableAdapter) Open(it *xdiff.Item) (xdiff.Session, error) {
	b, err := it.ResolveContent()
	if err != nil {
		return nil, &Error{"open", it.Name(), err}
	}
	sess, err := a.parse(b)
	if err != nil {
		return nil, &Error{"parse-" + a.name, it.Name(), err}
	}
	return sess, nil
}

func (a *tableAdapter) Keys(sess xdiff.Session) ([]string, error) {
	s := sess.(*tableSession)
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}

func (a *tableAdapter) MemberContent(sess xdiff.Session, short string) ([]byte, error) {
	m, err := sess.(*tableSession).get(short)
	if err != nil {
		return nil, err
	}
	return m.content, nil
}

func (a *tableAdapter) MemberSize(sess xdiff.Session, short string) (int64, error) {
	m, err := sess.(*tableSession).get(short)
	if err != nil {
		return 0, err
	}
	return int64(len(m.content)), nil
}

func (a *tableAdapter) MemberStat(sess xdiff.Session, short string) (*xdiff.Info, error) {
	m, err := sess.(*tableSession).get(short)
	if err != nil {
		return nil, err
	}
	return m.toInfo(short), nil
}

func (a *tableAdapter) MemberIsReg(sess xdiff.Session, short string) (bool, error) {
	m, err := sess.(*tableSession).get(short)
	if err != nil {
		return false, err
	}
	return m.isReg, nil
}

func (a *tableAdapter) MemberIsDir(sess xdiff.Session, short string) (bool, error) {
	m, err := sess.(*tableSession).get(short)
	if err != nil {
		return false, err
	}
	return m.isDir, nil
}

func (a *tableAdapter) MemberIsLnk(sess xdiff.Session, short string) (bool, error) {
	m, err := sess.(*tableSession).get(short)
	if err != nil {
		return false, err
	}
	return m.isLnk, nil
}

func (a *tableAdapter) MemberLink(sess xdiff.Session, short string) (string, error) {
	m, err := sess.(*tableSession).get(short)
	if err != nil {
		return "", err
	}
	return m.link, nil
}

func (a *tableAdapter) MemberInode(sess xdiff.Session, short string) (uint64, error) {
	m, err := sess.(*tableSession).get(short)
	if err != nil {
		return 0, err
	}
	return m.inode, nil
}

func (a *tableAdapter) MemberDevice(sess xdiff.Session, short string) (uint64, error) {
	m, err := sess.(*tableSession).get(short)
	if err != nil {
		return 0, err
	}
	return m.device, nil
}

var (
	_ xdiff.Adapter = (*tableAdapter)(nil)
)

// unixAdapter marks a tableAdapter as a UnixContainer (ar, cpio).
type unixAdapter struct{ *tableAdapter }

func (unixAdapter) IsUnixContainer() {}

// contentOnlyAdapter marks a tableAdapter as a ContentOnlyContainer
// (gzip, bz2, xz; ar also has no symlinks but does carry uid/gid,
// so it is registered as a UnixContainer rather than content-only).
type contentOnlyAdapter struct{ *tableAdapter }

func (contentOnlyAdapter) IsContentOnlyContainer() {}

var (
	_ xdiff.UnixContainer         = unixAdapter{}
	_ xdiff.ContentOnlyContainer = contentOnlyAdapter{}
)
