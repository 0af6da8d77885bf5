// tarmeta_test.go - TarMemberMetadata comparator tests
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
	"io/fs"
	"testing"

	"github.com/opencoff/xdiff"
	"github.com/opencoff/xdiff/box"
)

// stubTarSession satisfies xdiff.Session with nothing else needed: the
// per-member metadata lookup below keys off the short name alone.
type stubTarSession struct{}

func (stubTarSession) Close() error { return nil }

// stubTarAdapter is a minimal box.TarContainer stand-in: Name() == "tar"
// so TarMemberMetadata.Applies recognizes the parent, and MemberTarMeta
// answers from an in-memory map keyed by short name, without needing a
// real tar byte stream.
type stubTarAdapter struct {
	meta map[string]box.TarMeta
}

func (stubTarAdapter) Name() string                                          { return "tar" }
func (stubTarAdapter) Sep() string                                           { return xdiff.SepTar }
func (stubTarAdapter) Applies(*xdiff.Item) bool                              { return true }
func (stubTarAdapter) Open(*xdiff.Item) (xdiff.Session, error)               { return stubTarSession{}, nil }
func (stubTarAdapter) Keys(xdiff.Session) ([]string, error)                  { return nil, nil }
func (stubTarAdapter) MemberContent(xdiff.Session, string) ([]byte, error)   { return nil, nil }
func (stubTarAdapter) MemberSize(xdiff.Session, string) (int64, error)       { return 0, nil }
func (stubTarAdapter) MemberStat(xdiff.Session, string) (*xdiff.Info, error) { return nil, nil }
func (stubTarAdapter) MemberIsReg(xdiff.Session, string) (bool, error)       { return true, nil }
func (stubTarAdapter) MemberIsDir(xdiff.Session, string) (bool, error)       { return false, nil }
func (stubTarAdapter) MemberIsLnk(xdiff.Session, string) (bool, error)       { return false, nil }
func (stubTarAdapter) MemberLink(xdiff.Session, string) (string, error)      { return "", nil }
func (stubTarAdapter) MemberInode(xdiff.Session, string) (uint64, error)     { return 0, nil }
func (stubTarAdapter) MemberDevice(xdiff.Session, string) (uint64, error)    { return 0, nil }

func (a stubTarAdapter) MemberTarMeta(_ xdiff.Session, short string) (box.TarMeta, bool) {
	m, ok := a.meta[short]
	return m, ok
}

var _ box.TarContainer = stubTarAdapter{}

func mkTarMember(reg *xdiff.ItemRegistry, parentName, short string, mode fs.FileMode, uid, gid uint32, tm box.TarMeta) *xdiff.Item {
	parent := reg.FindOrCreate(parentName, nil)
	parent.SetBox(stubTarAdapter{meta: map[string]box.TarMeta{short: tm}})
	parent.SetSession(stubTarSession{})
	it := reg.FindOrCreate(xdiff.Join(parentName, xdiff.SepTar, short), parent)
	it.SetStat(&xdiff.Info{Mod: mode, Uid: uid, Gid: gid, Siz: 0})
	return it
}

func TestTarMemberMetadataModeMismatch(t *testing.T) {
	assert := newAsserter(t)

	tm := box.TarMeta{Type: '0'}
	reg := xdiff.NewItemRegistry()
	lhs := mkTarMember(reg, "left/a.tar", "foo", 0644, 1000, 1000, tm)
	rhs := mkTarMember(reg, "right/a.tar", "foo", 0755, 1000, 1000, tm)

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewTarMemberMetadata()}, nil, false, 0, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Different, "exp Different on mode mismatch, saw %s", v)
}

func TestTarMemberMetadataTypeMismatch(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := mkTarMember(reg, "left/a.tar", "foo", 0644, 1000, 1000, box.TarMeta{Type: '0'})
	rhs := mkTarMember(reg, "right/a.tar", "foo", 0644, 1000, 1000, box.TarMeta{Type: '2', Linkname: "bar"})

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewTarMemberMetadata()}, nil, false, 0, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Different, "exp Different on type/linkname mismatch, saw %s", v)
}

func TestTarMemberMetadataUnameMismatchWithoutIgnore(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := mkTarMember(reg, "left/a.tar", "foo", 0644, 1000, 1000, box.TarMeta{Type: '0', Uname: "alice"})
	rhs := mkTarMember(reg, "right/a.tar", "foo", 0644, 1000, 1000, box.TarMeta{Type: '0', Uname: "bob"})

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewTarMemberMetadata()}, nil, false, 0, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Different, "exp Different on uname mismatch, saw %s", v)
}

func TestTarMemberMetadataUidIgnoredWhenFlagSet(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := mkTarMember(reg, "left/a.tar", "foo", 0644, 1000, 1000, box.TarMeta{Type: '0', Uname: "alice"})
	rhs := mkTarMember(reg, "right/a.tar", "foo", 0644, 2000, 1000, box.TarMeta{Type: '0', Uname: "bob"})

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewTarMemberMetadata()}, nil, false, xdiff.IGN_UID, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Same, "exp Same when uid is ignored (zero-size members match), saw %s", v)
}

func TestTarMemberMetadataMatchZeroSize(t *testing.T) {
	assert := newAsserter(t)

	tm := box.TarMeta{Type: '0', Uname: "alice", Gname: "staff"}
	reg := xdiff.NewItemRegistry()
	lhs := mkTarMember(reg, "left/a.tar", "foo", 0644, 1000, 1000, tm)
	rhs := mkTarMember(reg, "right/a.tar", "foo", 0644, 1000, 1000, tm)

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewTarMemberMetadata()}, nil, false, 0, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Same, "exp Same on matching zero-size metadata, saw %s", v)
}

func TestTarMemberMetadataDoesNotApplyToTopLevel(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := reg.FindOrCreate("a", nil)
	rhs := reg.FindOrCreate("b", nil)

	tm := tarMemberMetadata{}
	assert(!tm.Applies(lhs, rhs), "top-level items should never be treated as tar members")
}
