// cpio.go - cpio archive container adapter
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
	"io"
	"io/fs"

	"github.com/cavaliergopher/cpio"
	"github.com/opencoff/xdiff"
)

// cpio magic numbers: "070701" (new ASCII), "070702" (new CRC ASCII),
// "070707" (old ASCII/portable).
var cpioMagics = [][]byte{
	[]byte("070701"),
	[]byte("070702"),
	[]byte("070707"),
}

// POSIX S_IFMT file-type bits, as used by the cpio on-disk mode field.
const (
	cIFMT  = 0170000
	cIFDIR = 0040000
	cIFLNK = 0120000
	cIFREG = 0100000
)

func cpioParse(b []byte) (*tableSession, error) {
	r := cpio.NewReader(bytes.NewReader(b))
	s := &tableSession{table: make(map[string]*member)}

	for {
		hdr, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if hdr.Name == "TRAILER!!!" {
			continue
		}

		buf := make([]byte, hdr.Size)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}

		modeBits := uint32(hdr.Mode)
		typ := modeBits & cIFMT

		m := &member{
			mode:   fs.FileMode(modeBits & 0777),
			uid:    hdr.Uid,
			gid:    hdr.Gid,
			device: devNum(uint64(hdr.Devmajor), uint64(hdr.Devminor)),
		}

		switch typ {
		case cIFDIR:
			m.isDir = true
			m.mode |= fs.ModeDir
		case cIFLNK:
			m.isLnk = true
			m.mode |= fs.ModeSymlink
			m.link = string(buf)
			m.content = buf
		default:
			m.isReg = true
			m.content = buf
		}

		s.order = append(s.order, hdr.Name)
		s.table[hdr.Name] = m
	}
	return s, nil
}

// devNum packs a (major, minor) pair into the same 64-bit
// representation go-fio's Info.Dev/Rdev use, so cpio rdevmajor/
// rdevminor compare consistently with filesystem device numbers.
func devNum(major, minor uint64) uint64 {
	return (major << 32) | minor
}

// NewCpio returns the Adapter for cpio archives (detected by the "new
// ASCII"/"CRC"/"portable" magic numbers at offset 0).
func NewCpio() xdiff.UnixContainer {
	return unixAdapter{&tableAdapter{
		name: "cpio",
		sep:  xdiff.SepCpio,
		magic: func(b []byte) bool {
			for _, mg := range cpioMagics {
				if bytes.HasPrefix(b, mg) {
					return true
				}
			}
			return false
		},
		parse: cpioParse,
	}}
}
