// elf.go - "close enough" ELF object comparator
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
	"bytes"
	"debug/elf"
	"strings"

	"github.com/opencoff/xdiff"
)

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// excludedSections never participate in ELF equality: build IDs and
// debug info vary run to run without changing the program's behavior.
var excludedSections = map[string]bool{
	".comment":            true,
	".note.gnu.build-id": true,
	".gnu_debuglink":      true,
}

func isDebugSection(name string) bool {
	return strings.HasPrefix(name, ".debug_") || strings.HasPrefix(name, ".zdebug_")
}

// elfCmp applies to any pair of regular files beginning with the ELF
// magic, regardless of where they live (filesystem or archive
// member) - build systems routinely package .o files inside ar/cpio
// archives.
type elfCmp struct{}

func NewELF() xdiff.Comparator { return elfCmp{} }

func (elfCmp) Name() string { return "elf" }

func (elfCmp) Applies(lhs, rhs *xdiff.Item) bool {
	if !lhs.IsReg() || !rhs.IsReg() {
		return false
	}
	lb, err := lhs.ResolveContent()
	if err != nil || !bytes.HasPrefix(lb, elfMagic) {
		return false
	}
	rb, err := rhs.ResolveContent()
	if err != nil || !bytes.HasPrefix(rb, elfMagic) {
		return false
	}
	return true
}

func (elfCmp) Compare(c *xdiff.Comparison) (xdiff.Verdict, error) {
	lb, err := c.Lhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}
	rb, err := c.Rhs.ResolveContent()
	if err != nil {
		return xdiff.Indeterminate, err
	}

	lf, err := elf.NewFile(bytes.NewReader(lb))
	if err != nil {
		return xdiff.Different, nil
	}
	defer lf.Close()

	rf, err := elf.NewFile(bytes.NewReader(rb))
	if err != nil {
		return xdiff.Different, nil
	}
	defer rf.Close()

	if lf.Machine != rf.Machine || lf.Class != rf.Class || lf.Data != rf.Data || lf.Type != rf.Type {
		return xdiff.Different, nil
	}

	lsec := curatedSections(lf)
	rsec := curatedSections(rf)
	if len(lsec) != len(rsec) {
		return xdiff.Different, nil
	}
	for name, lbody := range lsec {
		rbody, ok := rsec[name]
		if !ok || !bytes.Equal(lbody, rbody) {
			return xdiff.Different, nil
		}
	}
	return xdiff.Same, nil
}

func curatedSections(f *elf.File) map[string][]byte {
	out := make(map[string][]byte, len(f.Sections))
	for _, s := range f.Sections {
		if s.Name == "" {
			continue
		}
		if excludedSections[s.Name] || isDebugSection(s.Name) {
			continue
		}
		b, err := s.Data()
		if err != nil {
			// unreadable sections (e.g. SHT_NOBITS/.bss) contribute
			// nothing to the comparison - their size is already part
			// of section header metadata most builds don't touch.
			continue
		}
		out[s.Name] = b
	}
	return out
}
