package normalize

import (
	"encoding/csv"
	"io"
	"os"

	apperrors "futures-journal/internal/errors"
)

// ReadCSV reads raw rows from r. The first record is treated as the header;
// each subsequent record becomes a map from header name to cell value.
// Ragged rows are tolerated: short rows leave trailing columns absent, long
// rows drop the extras.
func ReadCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadCSVFile reads raw rows from the file at path.
func ReadCSVFile(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewFileError(path, err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return rows, apperrors.NewFileError(path, err)
	}
	return rows, nil
}
