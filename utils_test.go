// utils_test.go -- test harness utilities
//
// (c) 2024- Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package xdiff

import (
	"fmt"
	"os"
	"runtime"
	"testing"

	"github.com/pkg/xattr"
)

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("\n%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

func mkfilex(nm string) error {
	fd, err := os.OpenFile(nm, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("mkfile: %s: %w", nm, err)
	}
	if _, err = fd.Write([]byte("hello, world\n")); err != nil {
		return err
	}
	return fd.Close()
}

// xattrSet is test-only plumbing: production code never writes xattrs
// (the comparator tree is read-only), so this talks to the library
// directly instead of through a package helper.
func xattrSet(nm, key, val string) error {
	return xattr.Set(nm, key, []byte(val))
}
