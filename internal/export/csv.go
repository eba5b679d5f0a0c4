// Package export renders record listings as downloadable tabular artifacts.
package export

import (
	"encoding/csv"
	"io"
	"sid/internal/models"
	"strconv"
)

var csvHeader = []string{"id", "type", "date", "time"}

// WriteRecordsCSV writes records as a CSV table, one row per record, in the
// order given. The type column carries the length class ("11-digit" or
// "15-digit").
func WriteRecordsCSV(w io.Writer, records []models.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			strconv.Itoa(len(r.ID)) + "-digit",
			r.Date,
			r.Timestamp.Format("15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
