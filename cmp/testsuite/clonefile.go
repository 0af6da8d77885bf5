// clonefile.go -- byte-for-byte copy of a fixture file, preserving mtime
//
// This package used to depend on go-fio's own CloneFile for this; that
// module is the teacher this whole repo was built from, not a runtime
// dependency of it, so the DSL needs its own small copy helper for
// building a "both" fixture (same bytes appearing on both sides of a
// comparison, per spec 8 scenario 2/3/7).

package main

import (
	"io"
	"os"
)

func cloneFile(dst, src string) error {
	sfd, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sfd.Close()

	st, err := sfd.Stat()
	if err != nil {
		return err
	}

	dfd, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, st.Mode().Perm())
	if err != nil {
		return err
	}
	defer dfd.Close()

	if _, err := io.Copy(dfd, sfd); err != nil {
		return err
	}
	if err := dfd.Sync(); err != nil {
		return err
	}
	if err := dfd.Close(); err != nil {
		return err
	}

	mtime := st.ModTime()
	return os.Chtimes(dst, mtime, mtime)
}
