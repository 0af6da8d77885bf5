// box_test.go - test harness utilities
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
	"fmt"
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

// mkContentItem interns a synthetic top-level Item whose content is
// already set, so an adapter's Applies/Open can run on it without
// going through the real filesystem.
func mkContentItem(content []byte) *xdiff.Item {
	reg := xdiff.NewItemRegistry()
	it := reg.FindOrCreate("<test>", nil)
	it.SetContent(content)
	return it
}
