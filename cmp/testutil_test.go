// testutil_test.go - test harness utilities
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
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/opencoff/xdiff"
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

func mkfilex(fn string, content string) error {
	bn := filepath.Dir(fn)
	if err := os.MkdirAll(bn, 0700); err != nil {
		return fmt.Errorf("mkdir: %s: %w", bn, err)
	}

	fd, err := os.OpenFile(fn, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("creat: %s: %w", fn, err)
	}

	fd.Write([]byte(content))
	fd.Sync()
	return fd.Close()
}

// mkTopLevel interns a top-level Item for a real filesystem path.
func mkTopLevel(reg *xdiff.ItemRegistry, path string) *xdiff.Item {
	return reg.FindOrCreate(path, nil)
}

// newTestComparison builds a root-level Comparison over two top-level
// paths driven by the given chain; nil chain defaults to DefaultChain().
func newTestComparison(lhs, rhs string, chain []xdiff.Comparator) *xdiff.Comparison {
	if chain == nil {
		chain = DefaultChain()
	}
	reg := xdiff.NewItemRegistry()
	l := mkTopLevel(reg, lhs)
	r := mkTopLevel(reg, rhs)
	return xdiff.NewComparison(reg, l, r, chain, nil, false, 0, nil)
}
