// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CleanCSV rewrites a report in place with fully-empty rows removed. Rows
// where every field is the empty string sometimes appear after manual edits
// in spreadsheet tools. Returns the number of rows dropped.
func CleanCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening report: %w", err)
	}
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("reading report: %w", err)
	}

	var kept [][]string
	dropped := 0
	for _, record := range records {
		if emptyRow(record) {
			dropped++
			continue
		}
		kept = append(kept, record)
	}
	if dropped == 0 {
		return 0, nil
	}

	if len(kept) == 0 {
		kept = [][]string{}
	}
	if err := writeCSV(path, nil, kept); err != nil {
		return 0, err
	}
	return dropped, nil
}

func emptyRow(record []string) bool {
	for _, field := range record {
		if field != "" {
			return false
		}
	}
	return true
}
