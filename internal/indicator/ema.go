package indicator

// EMA returns the exponential moving average with smoothing k = 2/(period+1).
// Leading NaN rows are skipped; the average is seeded with the simple mean of the
// first period defined values and is defined from that row on.
func EMA(values []float64, period int) []float64 {
	out := newNA(len(values))
	if period <= 0 {
		return out
	}

	start := 0
	for start < len(values) && IsNA(values[start]) {
		start++
	}

	seed := start + period - 1
	if seed >= len(values) {
		return out
	}

	k := 2.0 / float64(period+1)
	prev := windowSum(values, seed, period) / float64(period)
	out[seed] = prev

	for i := seed + 1; i < len(values); i++ {
		prev = (values[i]-prev)*k + prev
		out[i] = prev
	}

	return out
}
