package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	c := RealClock{}
	before := time.Now()
	now := c.Now()
	if now.Before(before) {
		t.Fatalf("RealClock.Now() = %v, before %v", now, before)
	}
	if c.Since(before) < 0 {
		t.Fatal("RealClock.Since returned a negative duration")
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMockClock(start)

	if !c.Now().Equal(start) {
		t.Fatalf("Now = %v, want %v", c.Now(), start)
	}
	c.Advance(1500 * time.Millisecond)
	if got := c.Since(start); got != 1500*time.Millisecond {
		t.Fatalf("Since = %v, want 1.5s", got)
	}

	later := start.Add(time.Hour)
	c.Set(later)
	if !c.Now().Equal(later) {
		t.Fatalf("Set did not move the clock: %v", c.Now())
	}
}

func TestStepRate(t *testing.T) {
	cases := []struct {
		steps   int
		elapsed time.Duration
		want    float64
	}{
		{1000, 2 * time.Second, 500},
		{10, 0, 0},
		{10, -time.Second, 0},
		{0, time.Second, 0},
	}
	for _, tc := range cases {
		if got := StepRate(tc.steps, tc.elapsed); got != tc.want {
			t.Errorf("StepRate(%d, %v) = %v, want %v", tc.steps, tc.elapsed, got, tc.want)
		}
	}
}
