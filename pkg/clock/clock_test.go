package clock

import (
	"testing"
	"time"
)

func TestNowIsMonotonic(t *testing.T) {
	a := Now()
	time.Sleep(time.Millisecond)
	b := Now()

	if a < 0 {
		t.Errorf("expected non-negative timestamp, got %f", a)
	}
	if b <= a {
		t.Errorf("expected strictly increasing timestamps, got %f then %f", a, b)
	}
}

func TestWholeSecond(t *testing.T) {
	tests := []struct {
		ts   float64
		want int64
	}{
		{0, 0},
		{0.5, 0},
		{0.999, 0},
		{1.0, 1},
		{1.999, 1},
		{59.001, 59},
	}
	for _, tt := range tests {
		if got := WholeSecond(tt.ts); got != tt.want {
			t.Errorf("WholeSecond(%f): expected %d, got %d", tt.ts, tt.want, got)
		}
	}
}
