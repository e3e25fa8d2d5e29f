package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/gravsim/internal/physics"
)

func TestWatcherFrameLimit(t *testing.T) {
	var out bytes.Buffer
	w := NewWatcher(&out, "sun-earth", 10)
	now := time.Unix(1000, 0)
	w.now = func() time.Time { return now }

	bodies, err := physics.Build(physics.SunEarth(), 0)
	if err != nil {
		t.Fatal(err)
	}

	w.OnStep(bodies, physics.Day)
	w.OnStep(bodies, 2*physics.Day)
	now = now.Add(50 * time.Millisecond)
	w.OnStep(bodies, 3*physics.Day)
	if w.Frames() != 1 {
		t.Errorf("expected 1 frame inside 100ms, got %d", w.Frames())
	}

	now = now.Add(60 * time.Millisecond)
	w.OnStep(bodies, 4*physics.Day)
	if w.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", w.Frames())
	}

	got := out.String()
	if !strings.Contains(got, "sun-earth  day 4.0  bodies 2") {
		t.Errorf("missing header in %q", got)
	}
	// sun in the middle, earth at the right edge on the same row
	mid := strings.Split(got, "\n")[2+height/2]
	if !strings.Contains(mid, "@") || !strings.Contains(mid, "E") {
		t.Errorf("unexpected centre row %q", mid)
	}
}
