// armeta_test.go - ArMemberMetadata comparator tests
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

// stubArAdapter is a minimal xdiff.Adapter stand-in whose only
// purpose is to report Name() == "ar" so ArMemberMetadata.Applies
// recognizes a member's parent as an ar container, without needing a
// real archive byte stream.
type stubArAdapter struct{}

func (stubArAdapter) Name() string           { return "ar" }
func (stubArAdapter) Sep() string            { return xdiff.SepAr }
func (stubArAdapter) Applies(*xdiff.Item) bool { return true }
func (stubArAdapter) Open(*xdiff.Item) (xdiff.Session, error) { return nil, nil }
func (stubArAdapter) Keys(xdiff.Session) ([]string, error)    { return nil, nil }
func (stubArAdapter) MemberContent(xdiff.Session, string) ([]byte, error) { return nil, nil }
func (stubArAdapter) MemberSize(xdiff.Session, string) (int64, error)     { return 0, nil }
func (stubArAdapter) MemberStat(xdiff.Session, string) (*xdiff.Info, error) { return nil, nil }
func (stubArAdapter) MemberIsReg(xdiff.Session, string) (bool, error)  { return true, nil }
func (stubArAdapter) MemberIsDir(xdiff.Session, string) (bool, error)  { return false, nil }
func (stubArAdapter) MemberIsLnk(xdiff.Session, string) (bool, error)  { return false, nil }
func (stubArAdapter) MemberLink(xdiff.Session, string) (string, error) { return "", nil }
func (stubArAdapter) MemberInode(xdiff.Session, string) (uint64, error)  { return 0, nil }
func (stubArAdapter) MemberDevice(xdiff.Session, string) (uint64, error) { return 0, nil }

func mkArMember(reg *xdiff.ItemRegistry, parentName, short string, mode fs.FileMode, uid, gid uint32) *xdiff.Item {
	parent := reg.FindOrCreate(parentName, nil)
	parent.SetBox(stubArAdapter{})
	it := reg.FindOrCreate(xdiff.Join(parentName, xdiff.SepAr, short), parent)
	it.SetStat(&xdiff.Info{Mod: mode, Uid: uid, Gid: gid})
	return it
}

func TestArMemberMetadataModeMismatch(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := mkArMember(reg, "left/lib.a", "foo.o", 0644, 1000, 1000)
	rhs := mkArMember(reg, "right/lib.a", "foo.o", 0755, 1000, 1000)

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewArMemberMetadata()}, nil, false, 0, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Different, "exp Different on mode mismatch, saw %s", v)
}

func TestArMemberMetadataUidIgnoredWhenFlagSet(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := mkArMember(reg, "left/lib.a", "foo.o", 0644, 1000, 1000)
	rhs := mkArMember(reg, "right/lib.a", "foo.o", 0644, 2000, 1000)

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewArMemberMetadata()}, nil, false, xdiff.IGN_UID, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Indeterminate, "exp Indeterminate when uid is ignored, saw %s", v)
}

func TestArMemberMetadataUidMismatchWithoutIgnore(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := mkArMember(reg, "left/lib.a", "foo.o", 0644, 1000, 1000)
	rhs := mkArMember(reg, "right/lib.a", "foo.o", 0644, 2000, 1000)

	c := xdiff.NewComparison(reg, lhs, rhs, []xdiff.Comparator{NewArMemberMetadata()}, nil, false, 0, nil)
	v, err := xdiff.Dispatch(c)
	assert(err == nil, "%s", err)
	assert(v == xdiff.Different, "exp Different on uid mismatch, saw %s", v)
}

func TestArMemberMetadataDoesNotApplyToTopLevel(t *testing.T) {
	assert := newAsserter(t)

	reg := xdiff.NewItemRegistry()
	lhs := reg.FindOrCreate("a", nil)
	rhs := reg.FindOrCreate("b", nil)

	a := arMemberMetadata{}
	assert(!a.Applies(lhs, rhs), "top-level items should never be treated as ar members")
}
