// blot_test.go - date/time canonicalization tests
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

package blot

import "testing"

func TestBlotFullDateLine(t *testing.T) {
	got := Blot("built on Sun Feb 13 12:29:28 PST 2011 by root")
	want := "built on Day Mon 00 00:00:00 LOC 2011 by root"
	if got != want {
		t.Fatalf("exp %q, saw %q", want, got)
	}
}

func TestBlotISO8601(t *testing.T) {
	got := Blot("generated at 2011-02-13T12:29:28Z")
	want := "generated at 2011-00-00T00:00:00Z"
	if got != want {
		t.Fatalf("exp %q, saw %q", want, got)
	}
}

func TestBlotMonthYear(t *testing.T) {
	got := Blot("released Feb 2011")
	want := "released Mon 2011"
	if got != want {
		t.Fatalf("exp %q, saw %q", want, got)
	}
}

func TestBlotTwoBuildsConvergeAfterBlot(t *testing.T) {
	a := "# Generated Sun Feb 13 12:29:28 PST 2011\nVALUE=1\n"
	b := "# Generated Mon Jun  3 08:01:09 EDT 2024\nVALUE=1\n"
	if Blot(a) != Blot(b) {
		t.Fatalf("exp two builds with only a differing timestamp to converge after Blot:\n%q\n%q", Blot(a), Blot(b))
	}
}

func TestBlotBytes(t *testing.T) {
	got := BlotBytes([]byte("released Feb 2011"))
	want := "released Mon 2011"
	if string(got) != want {
		t.Fatalf("exp %q, saw %q", want, string(got))
	}
}
