package newton

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/danmuck/newton/internal/logging"
	"github.com/danmuck/newton/internal/testutil/testlog"
)

func TestEstimateKnownRoots(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		value float64
		want  string
	}{
		{4, "2.0000000000"},
		{2, "1.4142135624"},
		{9, "3.0000000000"},
	}
	for _, tc := range cases {
		got := Estimate(tc.value, DefaultSteps, nil)
		if FormatFixed(got) != tc.want {
			t.Fatalf("Estimate(%v) = %s, want %s", tc.value, FormatFixed(got), tc.want)
		}
		logging.Logf("newton/estimate: value=%v result=%s", tc.value, FormatFixed(got))
	}
}

func TestEstimateZeroStepsReturnsHalf(t *testing.T) {
	for _, v := range []float64{0, 1, 2, 7.25, -3, 1e300} {
		var c Collector
		if got := Estimate(v, 0, &c); got != v/2 {
			t.Fatalf("Estimate(%v, 0) = %v, want %v", v, got, v/2)
		}
		if len(c.Records) != 0 {
			t.Fatalf("expected no records for zero steps, got %d", len(c.Records))
		}
	}
	if got := Estimate(8, -3, nil); got != 4 {
		t.Fatalf("negative steps should not refine, got %v", got)
	}
}

func TestEstimateZeroValueIsNonFinite(t *testing.T) {
	for _, steps := range []int{1, 2, DefaultSteps} {
		var c Collector
		got := Estimate(0, steps, &c)
		if !math.IsNaN(got) && !math.IsInf(got, 0) {
			t.Fatalf("Estimate(0, %d) = %v, want non-finite", steps, got)
		}
		if len(c.Records) != steps {
			t.Fatalf("expected %d records, got %d", steps, len(c.Records))
		}
		for _, r := range c.Records {
			if !math.IsNaN(r.Estimate) {
				t.Fatalf("step %d estimate %v, want NaN", r.Step, r.Estimate)
			}
		}
	}
}

func TestEstimateNegativeValueRunsUnguarded(t *testing.T) {
	var c Collector
	got := Estimate(-4, 3, &c)
	// -2 -> 0 -> -Inf -> -Inf
	if c.Records[0].Estimate != 0 {
		t.Fatalf("first step estimate = %v, want 0", c.Records[0].Estimate)
	}
	if !math.IsInf(got, -1) {
		t.Fatalf("Estimate(-4, 3) = %v, want -Inf", got)
	}
}

func TestEstimateConvergesWithinFiveSteps(t *testing.T) {
	for _, v := range []float64{0.5, 1, 2, 3, 4, 5, 9, 10, 16} {
		for steps := 5; steps <= 12; steps++ {
			x := Estimate(v, steps, nil)
			if res := math.Abs(x*x - v); res >= 1e-6 {
				t.Fatalf("value=%v steps=%d residual=%g", v, steps, res)
			}
		}
	}
}

func TestEstimateResidualDoesNotGrow(t *testing.T) {
	for _, v := range []float64{0.5, 2, 3, 7, 10, 16, 42} {
		var c Collector
		Estimate(v, 12, &c)
		for i := 2; i < len(c.Records); i++ {
			prev := math.Abs(c.Records[i-1].Residual)
			next := math.Abs(c.Records[i].Residual)
			// allow rounding jitter once the iteration has settled
			if next > prev && next > 1e-12*v {
				t.Fatalf("value=%v residual grew at step %d: %g -> %g", v, c.Records[i].Step, prev, next)
			}
		}
	}
}

func TestEstimateRecordsSteps(t *testing.T) {
	var c Collector
	got := Estimate(2, 3, &c)
	if len(c.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(c.Records))
	}
	for i, r := range c.Records {
		if r.Step != i+1 {
			t.Fatalf("record %d has step %d", i, r.Step)
		}
		if r.Residual != r.Estimate*r.Estimate-2 {
			t.Fatalf("record %d residual mismatch: %v", i, r)
		}
	}
	if c.Records[0].Estimate != 1.5 {
		t.Fatalf("first estimate = %v, want 1.5", c.Records[0].Estimate)
	}
	if c.Records[2].Estimate != got {
		t.Fatalf("last record %v does not match result %v", c.Records[2].Estimate, got)
	}
}

func TestWriterSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	Estimate(4, 2, sink)
	if err := sink.Err(); err != nil {
		t.Fatalf("unexpected sink error: %v", err)
	}
	want := "2.0000000000\t| err: 0.0000000000\n2.0000000000\t| err: 0.0000000000\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}

	buf.Reset()
	Estimate(0, 1, NewWriterSink(&buf))
	if buf.String() != "NaN\t| err: NaN\n" {
		t.Fatalf("unexpected non-finite output: %q", buf.String())
	}
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("closed")
}

func TestWriterSinkKeepsFirstError(t *testing.T) {
	w := &failingWriter{}
	sink := NewWriterSink(w)
	got := Estimate(2, 5, sink)
	if sink.Err() == nil {
		t.Fatalf("expected write error")
	}
	if w.calls != 1 {
		t.Fatalf("expected writes to stop after first error, got %d", w.calls)
	}
	if FormatFixed(got) != "1.4142135624" {
		t.Fatalf("write failures must not affect the estimate, got %v", got)
	}
}

func TestTeeFansOut(t *testing.T) {
	var a, b Collector
	var buf strings.Builder
	Estimate(2, 4, Tee(&a, nil, &b, NewWriterSink(&buf)))
	if len(a.Records) != 4 || len(b.Records) != 4 {
		t.Fatalf("unexpected fan-out counts: %d %d", len(a.Records), len(b.Records))
	}
	if strings.Count(buf.String(), "\n") != 4 {
		t.Fatalf("unexpected writer output: %q", buf.String())
	}
}

func TestFormatFixed(t *testing.T) {
	cases := map[float64]string{
		1.4142135623730951: "1.4142135624",
		-0.25:              "-0.2500000000",
		math.Inf(1):        "+Inf",
		math.Inf(-1):       "-Inf",
	}
	for in, want := range cases {
		if got := FormatFixed(in); got != want {
			t.Fatalf("FormatFixed(%v) = %q, want %q", in, got, want)
		}
	}
}
