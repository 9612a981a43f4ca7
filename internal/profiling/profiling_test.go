package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	p := New()
	p.add("world.Generate", 3*time.Millisecond)
	p.add("meshing.Build", 2*time.Millisecond)
	p.add("meshing.Build", 2*time.Millisecond)

	got := p.Samples()
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[0].Name != "meshing.Build" || got[0].Calls != 2 || got[0].Total != 4*time.Millisecond {
		t.Errorf("unexpected first sample %+v", got[0])
	}

	if s := p.TopN(1); s != "meshing.Build:4.0ms(x2)" {
		t.Errorf("TopN(1) = %q", s)
	}
	if s := p.TopN(10); !strings.Contains(s, "world.Generate:3.0ms(x1)") {
		t.Errorf("TopN(10) = %q", s)
	}
}

func TestResetClears(t *testing.T) {
	p := New()
	p.Track("physics.Raycast")()
	if len(p.Samples()) != 1 {
		t.Fatalf("expected one sample after Track")
	}
	p.Reset()
	if len(p.Samples()) != 0 || p.TopN(3) != "" {
		t.Fatalf("Reset should clear samples")
	}
}
