package spiro

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PlateError is returned by [ReadPlate] for malformed input.
type PlateError struct {
	Line int
	Err  error
}

func (e *PlateError) Error() string {
	return fmt.Sprintf("plate line %d: %s", e.Line, e.Err)
}

func (e *PlateError) Unwrap() error {
	return e.Err
}

var errPlateSyntax = errors.New("syntax error")

// ReadPlate reads control points in the plate format used by libspiro's
// ppedit:
//
//	(plate
//	  (o 100 0)
//	  (c 0 100)
//	  (z)
//	)
//
// Each point is written as its type character followed by its coordinates.
// (z) ends a closed contour and is returned as a point of type [End] at the
// origin, so the result can be passed to [ConvertTaggedToBezier]. Empty lines
// and lines starting with ';' are ignored.
func ReadPlate(r io.Reader) ([]ControlPoint, error) {
	sc := bufio.NewScanner(r)
	var out []ControlPoint
	lineNo := 0
	state := 0 // 0: before "(plate", 1: inside, 2: after ")"
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		perr := func(format string, args ...any) error {
			return &PlateError{Line: lineNo, Err: fmt.Errorf("%w: "+format, append([]any{errPlateSyntax}, args...)...)}
		}
		switch state {
		case 0:
			if line != "(plate" {
				return nil, perr("expected (plate, got %q", line)
			}
			state = 1
		case 1:
			if line == ")" {
				state = 2
				continue
			}
			cp, err := parsePlatePoint(line)
			if err != nil {
				return nil, &PlateError{Line: lineNo, Err: err}
			}
			out = append(out, cp)
		case 2:
			return nil, perr("unexpected %q after end of plate", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if state != 2 {
		return nil, &PlateError{Line: lineNo, Err: fmt.Errorf("%w: unexpected end of input", errPlateSyntax)}
	}
	return out, nil
}

func parsePlatePoint(line string) (ControlPoint, error) {
	if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
		return ControlPoint{}, fmt.Errorf("%w: malformed point %q", errPlateSyntax, line)
	}
	fields := strings.Fields(line[1 : len(line)-1])
	if len(fields) == 0 || len(fields[0]) != 1 {
		return ControlPoint{}, fmt.Errorf("%w: malformed point %q", errPlateSyntax, line)
	}
	ty, err := ParsePointType(fields[0][0])
	if err != nil {
		return ControlPoint{}, err
	}
	if ty == End {
		if len(fields) != 1 {
			return ControlPoint{}, fmt.Errorf("%w: (z) takes no coordinates", errPlateSyntax)
		}
		return ControlPoint{Type: End}, nil
	}
	if len(fields) != 3 {
		return ControlPoint{}, fmt.Errorf("%w: expected 2 coordinates, got %d", errPlateSyntax, len(fields)-1)
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return ControlPoint{}, err
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return ControlPoint{}, err
	}
	return CP(x, y, ty), nil
}

// WritePlate writes points in the plate format read by [ReadPlate].
func WritePlate(w io.Writer, points []ControlPoint) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("(plate\n")
	for _, cp := range points {
		if cp.Type == End {
			bw.WriteString("  (z)\n")
			continue
		}
		fmt.Fprintf(bw, "  (%c %s %s)\n", byte(cp.Type),
			strconv.FormatFloat(cp.X, 'g', -1, 64),
			strconv.FormatFloat(cp.Y, 'g', -1, 64))
	}
	bw.WriteString(")\n")
	return bw.Flush()
}

// ReadPoints reads control points in either the plate format or as a JSON
// array of {"x", "y", "type"} objects, deciding by the first non-space
// character.
func ReadPoints(r io.Reader) ([]ControlPoint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var points []ControlPoint
		if err := json.Unmarshal(trimmed, &points); err != nil {
			return nil, fmt.Errorf("decoding JSON control points: %w", err)
		}
		return points, nil
	}
	return ReadPlate(bytes.NewReader(data))
}
