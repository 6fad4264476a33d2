// Package export renders roster records as CSV, a terminal report table and
// single-student cards.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gradesys/internal/models"
)

// WriteCSV writes the DisplayHeader row and one row per student, in order,
// with CRLF line endings.
func WriteCSV(w io.Writer, students []*models.Student) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	header := models.DisplayHeader
	if err := cw.Write(header[:]); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range students {
		row := s.DisplayFields()
		if err := cw.Write(row[:]); err != nil {
			return fmt.Errorf("write csv row %s: %w", s.IDNumber(), err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
