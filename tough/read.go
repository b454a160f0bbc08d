package tough

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Element is one parsed ELEME record
type Element struct {
	Label    string
	Material string
	Volume   float64
	X, Y, Z  float64
}

// ConnectionRecord is one parsed CONNE record
type ConnectionRecord struct {
	Label1, Label2 string
	Isot           int
	D1, D2         float64
	Area           float64
	Beta           float64
}

// MeshFile is the parsed content of a MESH file
type MeshFile struct {
	Elements    []Element
	Connections []ConnectionRecord
}

// InconRecord is one parsed INCON record
type InconRecord struct {
	Label  string
	Values []float64
}

// field slices a fixed-width column out of a line, tolerating short lines
func field(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start:end])
}

func parseFloatField(line string, start, end int) float64 {
	s := field(line, start, end)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ReadMesh parses the ELEME and CONNE blocks of a MESH file. Records that
// cannot be parsed under the fixed-column contract are skipped with their
// line number reported, since simulator-adjacent files occasionally carry
// banner lines.
func ReadMesh(r io.Reader) (*MeshFile, error) {
	mf := &MeshFile{}
	scanner := bufio.NewScanner(r)

	var block string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "ELEME"):
			block = "ELEME"
			continue
		case strings.HasPrefix(line, "CONNE"):
			block = "CONNE"
			continue
		case trimmed == "":
			block = ""
			continue
		case strings.HasPrefix(line, "ENDCY") || strings.HasPrefix(line, "ENDFI"):
			block = ""
			continue
		}

		switch block {
		case "ELEME":
			label := field(line, 0, 5)
			if label == "" {
				reportSkip(lineNo, "ELEME record without a label")
				continue
			}
			mf.Elements = append(mf.Elements, Element{
				Label:    label,
				Material: field(line, 5, 10),
				Volume:   parseFloatField(line, 10, 20),
				X:        parseFloatField(line, 30, 40),
				Y:        parseFloatField(line, 40, 50),
				Z:        parseFloatField(line, 50, 60),
			})
		case "CONNE":
			l1, l2 := field(line, 0, 5), field(line, 5, 10)
			if l1 == "" || l2 == "" {
				reportSkip(lineNo, "CONNE record without a composite label")
				continue
			}
			isot, _ := strconv.Atoi(field(line, 10, 15))
			mf.Connections = append(mf.Connections, ConnectionRecord{
				Label1: l1,
				Label2: l2,
				Isot:   isot,
				D1:     parseFloatField(line, 15, 25),
				D2:     parseFloatField(line, 25, 35),
				Area:   parseFloatField(line, 35, 45),
				Beta:   parseFloatField(line, 45, 55),
			})
		}
	}
	return mf, scanner.Err()
}

// ReadIncon parses an INCON block into per-cell records
func ReadIncon(r io.Reader) ([]InconRecord, error) {
	var records []InconRecord
	scanner := bufio.NewScanner(r)

	inBlock := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "INCON"):
			inBlock = true
			continue
		case trimmed == "":
			inBlock = false
			continue
		}
		if !inBlock {
			continue
		}

		label := field(line, 0, 5)
		if label == "" {
			reportSkip(lineNo, "INCON record without a label")
			continue
		}
		rec := InconRecord{Label: label}
		for start := 5; start < len(line); start += 20 {
			s := field(line, start, start+20)
			if s == "" {
				// A blank column ends the record; reading past it would
				// shift later values out of their field positions
				break
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				reportSkip(lineNo, "unparsable INCON value "+s)
				break
			}
			rec.Values = append(rec.Values, v)
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}
