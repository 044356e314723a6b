package evidence

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Line pairs one input line with its decoded record. A line that fails to
// decode keeps its raw text and the parse error; it is never dropped, so
// corrupt input can never silently vanish from the batch.
type Line struct {
	Number int
	Raw    string
	Record *Record
	Err    error
}

// ReadLines loads a JSONL results file, one record per non-blank line.
// Only a missing/unreadable file is a hard error; a malformed line is a
// localized event captured on its Line.
func ReadLines(path string) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	return ParseLines(data), nil
}

// ParseLines decodes JSONL content line by line.
func ParseLines(data []byte) []Line {
	var lines []Line

	for i, raw := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		line := Line{Number: i + 1, Raw: trimmed}
		var rec Record
		if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
			line.Err = fmt.Errorf("failed to parse line %d: %w", i+1, err)
		} else {
			line.Record = &rec
		}
		lines = append(lines, line)
	}

	return lines
}

// WriteLines writes the annotated batch back out in the same JSONL shape.
// A line that never parsed is emitted as an UNVERIFIED stub carrying the
// parse error, keeping output line count equal to input line count.
func WriteLines(path string, lines []Line) error {
	var sb strings.Builder

	for _, line := range lines {
		rec := line.Record
		if rec == nil {
			rec = stubRecord(line)
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode line %d: %w", line.Number, err)
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write validated results: %w", err)
	}
	return nil
}

// stubRecord stands in for a line that could not be parsed. Fail-closed:
// it is a failure with reason UNVERIFIED.
func stubRecord(line Line) *Record {
	msg := "unparseable record"
	if line.Err != nil {
		msg = line.Err.Error()
	}
	return &Record{
		Passed:        false,
		FailureReason: ReasonUnverified,
		ParseError:    msg,
	}
}
