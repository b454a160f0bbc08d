package tough

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// TimeStep is one parsed output table: the element-keyed data printed by the
// simulator at a single reporting time.
type TimeStep struct {
	Time    float64
	Columns []string
	Labels  []string
	Data    map[string][]float64
}

// FormatError describes a line that cannot be interpreted under the
// fixed-width record contract. Simulator files carry non-data banner lines,
// so such lines are logged with their line number and skipped; parsing
// always continues.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error at line %d: %s", e.Line, e.Reason)
}

func reportSkip(line int, reason string) {
	log.Printf("tough: skipping: %v", &FormatError{Line: line, Reason: reason})
}

// ReadOutput parses the simulator's tabular time-series output into an
// ordered sequence of time steps. Each table is announced by a "TOTAL TIME"
// marker carrying the report time on the following data line, then an
// "ELEM." header naming the data columns and one row per element. Parsing is
// partial-failure tolerant: banner and otherwise unparsable lines, including
// banners that merely mention TOTAL TIME, are skipped with a logged line
// number and never abort the parse.
func ReadOutput(r io.Reader) ([]TimeStep, error) {
	var steps []TimeStep
	scanner := bufio.NewScanner(r)

	var current *TimeStep
	pendingTime := false
	markerLine := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.Contains(line, "TOTAL TIME") {
			pendingTime = true
			markerLine = lineNo
			continue
		}

		if pendingTime && trimmed != "" {
			pendingTime = false
			fields := strings.Fields(trimmed)
			if t, err := strconv.ParseFloat(fields[0], 64); err == nil {
				// A confirmed table marker flushes the previous table
				if current != nil {
					steps = append(steps, *current)
				}
				current = &TimeStep{Time: t, Data: make(map[string][]float64)}
				continue
			}
			// A banner that mentions TOTAL TIME, not a table marker; the
			// line in hand may still belong to the surrounding table
			reportSkip(markerLine, fmt.Sprintf(
				"TOTAL TIME without a report time on the following line (got %q)", fields[0]))
		}

		if current == nil {
			continue
		}

		if strings.HasPrefix(trimmed, "ELEM.") {
			fields := strings.Fields(trimmed)
			// Drop the ELEM. and INDEX headers, keep the data columns
			for _, f := range fields[1:] {
				if f == "INDEX" {
					continue
				}
				current.Columns = append(current.Columns, f)
				current.Data[f] = nil
			}
			continue
		}

		if trimmed == "" || len(current.Columns) == 0 {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) != len(current.Columns)+2 {
			reportSkip(lineNo, fmt.Sprintf("expected %d fields, got %d",
				len(current.Columns)+2, len(fields)))
			continue
		}
		if _, err := strconv.Atoi(fields[1]); err != nil {
			reportSkip(lineNo, "second field is not an element index")
			continue
		}
		values := make([]float64, len(current.Columns))
		ok := true
		for i, f := range fields[2:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				reportSkip(lineNo, "unparsable value "+f)
				ok = false
				break
			}
			values[i] = v
		}
		if !ok {
			continue
		}
		current.Labels = append(current.Labels, fields[0])
		for i, col := range current.Columns {
			current.Data[col] = append(current.Data[col], values[i])
		}
	}
	if current != nil {
		steps = append(steps, *current)
	}
	return steps, scanner.Err()
}
