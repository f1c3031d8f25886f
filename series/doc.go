// Package series fits piecewise-linear approximations to time series.
//
// A Series holds microsecond timestamps and float64 values, the same shape as
// a numeric metric. Timestamps are mapped to x = (ts - origin) / unit before
// solving; the default unit is one second and the default origin is the first
// timestamp, which keeps the squared sums used by the solver small.
//
// The resulting Fit can evaluate the approximation at any timestamp within the
// fitted range, which makes it a lossy compression of the series: only one
// line per segment needs to be kept. See the blob package for its binary
// encoding.
//
// Example:
//
//	s := series.Series{Name: "cpu.usage", Timestamps: ts, Values: values}
//	fit, err := s.Fit(5.0, series.WithUnit(time.Minute))
//	if err != nil {
//	    return err
//	}
//	v, err := fit.At(ts[10])
package series
