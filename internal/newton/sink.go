package newton

import (
	"fmt"
	"io"
	"strconv"
)

// Sink receives diagnostic records in step order.
type Sink interface {
	Observe(Record)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Record)

func (f SinkFunc) Observe(r Record) { f(r) }

// Discard drops every record.
var Discard Sink = SinkFunc(func(Record) {})

// FormatFixed renders v with ten fractional digits.
func FormatFixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 10, 64)
}

// WriterSink prints one tab-separated line per record. The first write error
// is kept and later records are dropped; the estimator never sees it.
type WriterSink struct {
	w   io.Writer
	err error
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Observe(r Record) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, "%s\t| err: %s\n", FormatFixed(r.Estimate), FormatFixed(r.Residual))
}

func (s *WriterSink) Err() error {
	return s.err
}

// Collector keeps every record it sees.
type Collector struct {
	Records []Record
}

func (c *Collector) Observe(r Record) {
	c.Records = append(c.Records, r)
}

// Tee fans a record out to each sink in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(r Record) {
		for _, s := range sinks {
			if s != nil {
				s.Observe(r)
			}
		}
	})
}
