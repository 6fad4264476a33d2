package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gradesys/internal/models"
)

// WriteTable writes an aligned scores sheet. An empty title is omitted.
func WriteTable(w io.Writer, title string, students []*models.Student) error {
	if title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := models.DisplayHeader
	fmt.Fprintln(tw, strings.Join(header[:], "\t"))
	for _, s := range students {
		row := s.DisplayFields()
		fmt.Fprintln(tw, strings.Join(row[:], "\t"))
	}
	return tw.Flush()
}

// WriteCard writes one student as label/value rows.
func WriteCard(w io.Writer, title string, s *models.Student) error {
	if title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := s.DisplayFields()
	for i, label := range models.DisplayHeader {
		fmt.Fprintf(tw, "%s:\t%s\n", label, row[i])
	}
	return tw.Flush()
}

// SafeFileName keeps letters, digits, '-' and '_' of id. An id with none of
// those yields "student".
func SafeFileName(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "student"
	}
	return b.String()
}
