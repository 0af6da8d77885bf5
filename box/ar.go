// ar.go - unix "ar" archive container adapter
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

	"github.com/blakesmith/ar"
	"github.com/opencoff/xdiff"
)

var arMagic = []byte("!<arch>\n")

func arParse(b []byte) (*tableSession, error) {
	r := ar.NewReader(bytes.NewReader(b))
	s := &tableSession{table: make(map[string]*member)}

	for {
		hdr, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		buf := make([]byte, hdr.Size)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}

		name := hdr.Name
		m := &member{
			content: buf,
			mode:    fs.FileMode(hdr.Mode) & fs.ModePerm,
			uid:     hdr.Uid,
			gid:     hdr.Gid,
			isReg:   true,
		}
		s.order = append(s.order, name)
		s.table[name] = m
	}
	return s, nil
}

// NewAr returns the Adapter for unix "ar" archives (detected by the
// `!<arch>\n` magic at offset 0). Members carry uid/gid/mode, so it is
// registered as a UnixContainer even though ar has no symlink concept.
func NewAr() xdiff.UnixContainer {
	return unixAdapter{&tableAdapter{
		name: "ar",
		sep:  xdiff.SepAr,
		magic: func(b []byte) bool {
			return bytes.HasPrefix(b, arMagic)
		},
		parse: arParse,
	}}
}
