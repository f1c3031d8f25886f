package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/segfit/series"
)

// readSeries reads "x,y" rows into a series.
//
// x is either an integer, taken as microseconds, or an RFC 3339 timestamp.
// A first row whose x does not parse is treated as a header. Blank lines and
// lines starting with '#' are skipped.
func readSeries(r io.Reader, name string) (series.Series, error) {
	s := series.Series{Name: name}

	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return s, fmt.Errorf("read csv: %w", err)
		}

		ts, err := parseTimestamp(record[0])
		if err != nil {
			if row == 0 {
				continue
			}
			line, _ := reader.FieldPos(0)
			return s, fmt.Errorf("line %d: %w", line, err)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			line, _ := reader.FieldPos(1)
			return s, fmt.Errorf("line %d: invalid value %q: %w", line, record[1], err)
		}

		s.Timestamps = append(s.Timestamps, ts)
		s.Values = append(s.Values, value)
	}

	return s, nil
}

func parseTimestamp(field string) (int64, error) {
	field = strings.TrimSpace(field)

	if ts, err := strconv.ParseInt(field, 10, 64); err == nil {
		return ts, nil
	}

	t, err := time.Parse(time.RFC3339Nano, field)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: want integer microseconds or RFC 3339", field)
	}

	return t.UnixMicro(), nil
}
