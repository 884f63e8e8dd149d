package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	for i := 0; i < 3; i++ {
		stop := Track("test.section")
		time.Sleep(time.Millisecond)
		stop()
	}
	ss := Snapshot()
	if len(ss) != 1 {
		t.Fatalf("got %d samples, want 1", len(ss))
	}
	if ss[0].Calls != 3 {
		t.Fatalf("calls: got %d, want 3", ss[0].Calls)
	}
	if ss[0].Total < 3*time.Millisecond {
		t.Fatalf("total %v shorter than sleeps", ss[0].Total)
	}
	if s := TopN(5); !strings.HasPrefix(s, "test.section:") || !strings.HasSuffix(s, "ms") {
		t.Fatalf("unexpected TopN %q", s)
	}
	if f := Fields(5); len(f) != 1 {
		t.Fatalf("fields: got %d, want 1", len(f))
	}
	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Fatal("ResetFrame left samples behind")
	}
}
