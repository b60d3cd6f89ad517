// SPDX-License-Identifier: Apache-2.0

package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV reads a comma separated table with a header row.
func ReadCSV(r io.Reader) (Table, error) {
	return read(r, ',')
}

// ReadTSV reads a tab separated table with a header row.
func ReadTSV(r io.Reader) (Table, error) {
	return read(r, '\t')
}

func read(r io.Reader, comma rune) (Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, fmt.Errorf("reading header: %w", io.ErrUnexpectedEOF)
		}
		return Table{}, fmt.Errorf("reading header: %w", err)
	}

	t := Table{
		columns: header,
	}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("reading row %d: %w", len(t.rows)+2, err)
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}

// WriteCSV writes the table as comma separated values, header first, no
// index column.
func (t Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
