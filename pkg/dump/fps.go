package dump

// fpsMeter buckets received frames into whole seconds and reports the
// finished bucket's count when the second turns over.
type fpsMeter struct {
	second int64
	accum  uint
}

// Tick records one frame received in the given whole-second bucket. When
// the bucket differs from the previous one, it returns the previous
// bucket's frame count and true.
func (m *fpsMeter) Tick(second int64) (uint, bool) {
	var fps uint
	turned := second != m.second
	if turned {
		fps = m.accum
		m.accum = 0
		m.second = second
	}
	m.accum++
	return fps, turned
}
