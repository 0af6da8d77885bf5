// compress.go - single-member decompressor adapters: gzip, bz2, xz
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
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/opencoff/xdiff"
	"github.com/ulikunitz/xz"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	bz2Magic  = []byte("BZh")
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

func singleMember(format string, decode func([]byte) ([]byte, error)) func([]byte) (*tableSession, error) {
	return func(b []byte) (*tableSession, error) {
		content, err := decode(b)
		if err != nil {
			return nil, err
		}
		name := xdiff.ContentName(format)
		s := &tableSession{
			order: []string{name},
			table: map[string]*member{
				name: {content: content, isReg: true},
			},
		}
		return s, nil
	}
}

func decodeGzip(b []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func decodeBz2(b []byte) ([]byte, error) {
	return io.ReadAll(bzip2.NewReader(bytes.NewReader(b)))
}

func decodeXz(b []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// NewGzip returns the Adapter for gzip streams (magic \x1f\x8b),
// exposing a single synthetic member "{gzipcontent}".
func NewGzip() xdiff.ContentOnlyContainer {
	return contentOnlyAdapter{&tableAdapter{
		name: "gzip",
		sep:  xdiff.SepGzip,
		magic: func(b []byte) bool {
			return bytes.HasPrefix(b, gzipMagic)
		},
		parse: singleMember("gzip", decodeGzip),
	}}
}

// NewBz2 returns the Adapter for bzip2 streams (magic "BZh"), exposing
// a single synthetic member "{bz2content}". Decode-only, matching the
// module's non-goal of never writing archives.
func NewBz2() xdiff.ContentOnlyContainer {
	return contentOnlyAdapter{&tableAdapter{
		name: "bz2",
		sep:  xdiff.SepBz2,
		magic: func(b []byte) bool {
			return bytes.HasPrefix(b, bz2Magic)
		},
		parse: singleMember("bz2", decodeBz2),
	}}
}

// NewXz returns the Adapter for xz streams (magic \xfd7zXZ\x00),
// exposing a single synthetic member "{xzcontent}".
func NewXz() xdiff.ContentOnlyContainer {
	return contentOnlyAdapter{&tableAdapter{
		name: "xz",
		sep:  xdiff.SepXz,
		magic: func(b []byte) bool {
			return bytes.HasPrefix(b, xzMagic)
		},
		parse: singleMember("xz", decodeXz),
	}}
}
