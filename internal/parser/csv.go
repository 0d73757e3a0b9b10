package parser

import (
	"encoding/csv"
	"fmt"
	"io"
)

// csvBatchSize is the number of data rows per table block.
const csvBatchSize = 20

// CSVParser handles CSV files. Rows are grouped into tables of
// csvBatchSize rows, each under an "Rows a-b" heading, so a long sheet
// spreads over several slides.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Source, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	src := &Source{Title: trimExt(filename, ".csv")}
	if len(records) == 0 {
		return src, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))
		src.Elements = append(src.Elements,
			heading(2, fmt.Sprintf("Rows %d-%d", i+2, end+1)), // 1-indexed, skip header
			table(headers, dataRows[i:end]),
		)
	}

	return src, nil
}
