package xiangqi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTimelineAddNextTruncatesFuture(t *testing.T) {
	tl := NewTimeline[string]()
	if tl.HeadIndex() != -1 {
		t.Fatalf("empty head = %d", tl.HeadIndex())
	}
	if _, ok := tl.Current(); ok {
		t.Fatalf("empty timeline has a current entry")
	}

	tl.AddNext("a")
	tl.AddNext("b")
	tl.AddNext("c")
	if !tl.SetHead(0) {
		t.Fatalf("SetHead(0) failed")
	}
	if tl.Len() != 3 || tl.IsUpToDate() {
		t.Fatalf("rewind should keep the future: len=%d", tl.Len())
	}
	if v, _ := tl.At(2); v != "c" {
		t.Fatalf("future entry = %q", v)
	}

	tl.AddNext("x")
	if diff := cmp.Diff([]string{"a", "x"}, tl.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
	if tl.Len() != 2 || !tl.IsUpToDate() {
		t.Fatalf("branch not discarded: len=%d", tl.Len())
	}
}

func TestTimelineSetHeadBounds(t *testing.T) {
	tl := NewTimeline(1, 2)
	for _, i := range []int{-2, 2, 10} {
		if tl.SetHead(i) {
			t.Errorf("SetHead(%d) accepted", i)
		}
	}
	if !tl.SetHead(-1) {
		t.Fatalf("SetHead(-1) rejected")
	}
	if len(tl.History()) != 0 {
		t.Fatalf("history before first entry should be empty")
	}
	if v, ok := tl.At(1); !ok || v != 2 {
		t.Fatalf("At(1) = %v %v", v, ok)
	}
}
