// cpiometa_test.go - CpioMemberMetadata comparator tests
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
)

// stubCpioAdapter is a minimal xdiff.Adapter stand-in whose only
// purpose is to report Name() == "cpio" so CpioMemberMetadata.Applies
// recognizes a member's parent as a cpio container, without needing a
// real archive byte stream.
type stubCpioAdapter struct{}

func (stubCpioAdapter) Name() string                                          { return "cpio" }
func (stubCpioAdapter) Sep() string                                           { return xdiff.SepCpio }
func (stubCpioAdapter) Applies(*xdiff.Item) bool                              { return true }
func (stubCpioAdapter) Open(*xdiff.Item) (xdiff.Session, error)               { return nil, nil }
func (stubCpioAdapter) Keys(xdiff.Session) ([]string, error)                  { return nil, nil }
func (stubCpioAdapter) MemberContent(xdiff.Session, string) ([]byte, error)   { return nil, nil }
func (stubCpioAdapter) MemberSize(xdiff.Session, string) (int64, error)       { return 0, nil }
func (stubCpioAdapter) MemberStat(xdiff.Session, string) (*xdiff.Info, error) { return nil, nil }
func (stubCpioAdapter) MemberIsReg(xdiff.Session, string) (bool, error)       { return true, nil }
func (stubCpioAdapter) MemberIsDir(xdiff.Session, string) (bool, error)       { return false, nil }
func (stubCpioAdapter) MemberIsLnk(xdiff.Session, string) (bool, error)       { return false, nil }
func (stubCpioAdapter) MemberLink(xdiff.Session, string) (string, error)      { return "", nil }
func (stubCpioAdapter) MemberInode(xdiff.Session, string) (uint64, error)     { return 0, nil }
func (stubCpioAdapter) MemberDevice(xdiff.Session, string) (uint64, error)    { return 0, nil }

func mkCpioMember(reg *xdiff.ItemRegistry, parentName, short string, mode fs.FileMode, uid, gid uint32, dev uint64) *xdiff.Item {
	parent := reg.FindOrCreate(parentName, nil)
	parent.SetBox(stubCpioAdapter{})
	it := reg.FindOrCreate(xdiff.Join(parentName, xdiff.SepCpio, short), parent)
	it.SetStat(&xdiff.Info{Mod: mode, Uid: uid, Gid: gid, Dev: dev})
	return it
}

func TestCpioMemberMetadataModeMismatch(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := mkCpioMember(reg, "left/a.cpio", "foo", 0644, 1000, 1000, 0)
	rhs := mkCpioMember(reg, "right/a.cpio", "foo", 0755, 1000, 1000, 0)

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewCpioMemberMetadata()}, nil, false, 0, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Different, "exp Different on mode mismatch, saw %s", v)
}

func TestCpioMemberMetadataDeviceMismatch(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := mkCpioMember(reg, "left/a.cpio", "foo", 0644, 0, 0, 0x0801)
	rhs := mkCpioMember(reg, "right/a.cpio", "foo", 0644, 0, 0, 0x0802)

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewCpioMemberMetadata()}, nil, false, 0, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Different, "exp Different on rdevmajor/rdevminor mismatch, saw %s", v)
}

func TestCpioMemberMetadataUidIgnoredWhenFlagSet(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := mkCpioMember(reg, "left/a.cpio", "foo", 0644, 1000, 1000, 0)
	rhs := mkCpioMember(reg, "right/a.cpio", "foo", 0644, 2000, 1000, 0)

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewCpioMemberMetadata()}, nil, false, xdiff.IGN_UID, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Same, "exp Same when uid is ignored (zero-size members match), saw %s", v)
}

func TestCpioMemberMetadataUidMismatchWithoutIgnore(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := mkCpioMember(reg, "left/a.cpio", "foo", 0644, 1000, 1000, 0)
	rhs := mkCpioMember(reg, "right/a.cpio", "foo", 0644, 2000, 1000, 0)

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewCpioMemberMetadata()}, nil, false, 0, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Different, "exp Different on uid mismatch, saw %s", v)
}

func TestCpioMemberMetadataMatchZeroSize(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := mkCpioMember(reg, "left/a.cpio", "foo", 0644, 1000, 1000, 0)
	rhs := mkCpioMember(reg, "right/a.cpio", "foo", 0644, 1000, 1000, 0)

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewCpioMemberMetadata()}, nil, false, 0, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Same, "exp Same on matching zero-size metadata, saw %s", v)
}

func TestCpioMemberMetadataDoesNotApplyToTopLevel(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := reg.FindOrCreate("a", nil)
	rhs := reg.FindOrCreate("b", nil)

	cm := cpioMemberMetadata{}
	assert(!cm.Applies(lhs, rhs), "top-level items should never be treated as cpio members")
}
