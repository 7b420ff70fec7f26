// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"math"
	"testing"
	"time"
)

func TestTimelineLinearProgress(t *testing.T) {
	tl := NewTimeline(0)
	start := time.Unix(100, 0)

	if got := tl.AnimateTo("k", 10, 100*time.Millisecond, EaseLinear, start); got != 0 {
		t.Fatalf("value at start = %v", got)
	}
	if got := tl.Get("k", start.Add(50*time.Millisecond)); math.Abs(got-5) > 1e-9 {
		t.Fatalf("value halfway = %v", got)
	}
	if !tl.IsAnimating("k", start.Add(50*time.Millisecond)) {
		t.Fatalf("expected animation in flight")
	}
	if got := tl.Get("k", start.Add(time.Second)); got != 10 {
		t.Fatalf("value after end = %v", got)
	}
	if tl.HasActiveAnimations(start.Add(time.Second)) {
		t.Fatalf("animation should be finished")
	}
}

func TestTimelineRetargetStartsFromCurrent(t *testing.T) {
	tl := NewTimeline(0)
	start := time.Unix(100, 0)
	tl.AnimateTo("k", 10, 100*time.Millisecond, EaseLinear, start)

	mid := start.Add(50 * time.Millisecond)
	if got := tl.AnimateTo("k", 0, 100*time.Millisecond, EaseLinear, mid); math.Abs(got-5) > 1e-9 {
		t.Fatalf("retarget should start at 5, got %v", got)
	}
	if got := tl.Get("k", mid.Add(50*time.Millisecond)); math.Abs(got-2.5) > 1e-9 {
		t.Fatalf("value after retarget = %v", got)
	}
	if tl.Target("k") != 0 {
		t.Fatalf("target = %v", tl.Target("k"))
	}
}

func TestTimelineZeroDurationAndSet(t *testing.T) {
	tl := NewTimeline(3)
	now := time.Unix(0, 0)
	if got := tl.Get("missing", now); got != 3 {
		t.Fatalf("default initial = %v", got)
	}
	if got := tl.AnimateTo("k", 7, 0, nil, now); got != 7 {
		t.Fatalf("instant animation = %v", got)
	}
	tl.Set("k", -2)
	if got := tl.Get("k", now); got != -2 {
		t.Fatalf("set value = %v", got)
	}
	tl.Reset("k")
	if got := tl.Get("k", now); got != 3 {
		t.Fatalf("reset value = %v", got)
	}
}

func TestEasingByName(t *testing.T) {
	for _, name := range []string{"linear", "smoothstep", "smootherstep", "ease-in", "ease-out", "ease-out-cubic", "cubic"} {
		fn := EasingByName(name)
		if fn == nil {
			t.Fatalf("%s not resolved", name)
		}
		if fn(0) != 0 || math.Abs(fn(1)-1) > 1e-9 {
			t.Fatalf("%s does not map 0->0, 1->1", name)
		}
	}
	if EasingByName("wobble") != nil {
		t.Fatalf("unknown easing resolved")
	}
}
