// Package jsonl reads and validates fine-tune training data in JSONL
// form: one JSON object per line with non-empty prompt and completion
// strings.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Record is a single prompt/completion training example.
type Record struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// Read parses JSONL training data. Blank lines are skipped. The first
// malformed or incomplete record aborts the read with a line-numbered
// error.
func Read(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	// Training examples can run long; match the buffer headroom used
	// for API stream parsing.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var records []Record
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", line, err)
		}
		if rec.Prompt == "" {
			return nil, fmt.Errorf("line %d: missing or empty prompt", line)
		}
		if rec.Completion == "" {
			return nil, fmt.Errorf("line %d: missing or empty completion", line)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read training data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no training records found")
	}
	return records, nil
}
