package newton

// DefaultSteps is the refinement count used when callers have no preference.
const DefaultSteps = 10

// Record is the diagnostic emitted after each refinement step.
type Record struct {
	Step     int
	Estimate float64
	// Residual is Estimate^2 - value, signed.
	Residual float64
}

// Estimate refines value/2 toward sqrt(value) with exactly steps Newton
// updates, reporting every intermediate estimate to sink. A nil sink
// discards. steps <= 0 returns value/2 untouched.
func Estimate(value float64, steps int, sink Sink) float64 {
	if sink == nil {
		sink = Discard
	}
	x := value / 2
	for i := 0; i < steps; i++ {
		x = 0.5 * (x + value/x)
		sink.Observe(Record{Step: i + 1, Estimate: x, Residual: x*x - value})
	}
	return x
}
