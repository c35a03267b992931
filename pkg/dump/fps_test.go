package dump

import "testing"

func TestFPSMeterEmitsPreviousSecond(t *testing.T) {
	var m fpsMeter

	// 5 frames land within second 10.
	for i := 0; i < 5; i++ {
		fps, turned := m.Tick(10)
		if i == 0 {
			// The very first frame opens the bucket with an empty count.
			if !turned || fps != 0 {
				t.Fatalf("first tick: expected turned with fps=0, got turned=%v fps=%d", turned, fps)
			}
		} else if turned {
			t.Fatalf("tick %d: unexpected bucket turn", i)
		}
	}

	// The first frame of second 11 reports the 5 frames of second 10.
	fps, turned := m.Tick(11)
	if !turned {
		t.Fatal("expected bucket turn at second 11")
	}
	if fps != 5 {
		t.Errorf("expected fps=5, got %d", fps)
	}

	// 3 frames total within second 11, then second 12 reports them.
	m.Tick(11)
	m.Tick(11)
	fps, turned = m.Tick(12)
	if !turned {
		t.Fatal("expected bucket turn at second 12")
	}
	if fps != 3 {
		t.Errorf("expected fps=3, got %d", fps)
	}
}

func TestFPSMeterSameSecond(t *testing.T) {
	var m fpsMeter

	m.Tick(7)
	for i := 0; i < 100; i++ {
		if _, turned := m.Tick(7); turned {
			t.Fatal("bucket must not turn within the same second")
		}
	}
	fps, _ := m.Tick(8)
	if fps != 101 {
		t.Errorf("expected fps=101, got %d", fps)
	}
}
