package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/export"
	"github.com/dmitrijs2005/gradesys/internal/filex"
	"github.com/dmitrijs2005/gradesys/internal/models"
)

const reportTitle = "SCORES SHEET"

// Export writes the whole roster to students.csv in the data directory.
func (a *App) Export(ctx context.Context) error {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, slices.Collect(a.students.All())); err != nil {
		a.notify(ctx, "export students", err)
		return err
	}

	path := filepath.Join(a.config.DataDir, common.ExportFileName)
	if err := filex.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		a.notify(ctx, "export students", err)
		return err
	}

	a.log.Info(ctx, "roster exported", "path", path, "records", a.students.Len())
	fmt.Fprintf(a.out, "Students exported to %s\n", path)
	return nil
}

// Card saves one student's card under individual_cards/ in the data
// directory, named after the sanitized id.
func (a *App) Card(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	st, ok := a.students.Find(id)
	if !ok {
		fmt.Fprintf(a.out, "No student with ID %s.\n", models.NormalizeID(id))
		return common.ErrNotFound
	}

	dir, err := filex.EnsureSubDir(a.config.DataDir, common.CardsDirName)
	if err != nil {
		a.notify(ctx, "save card", err)
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteCard(&buf, reportTitle, st); err != nil {
		a.notify(ctx, "save card", err)
		return err
	}

	path := filepath.Join(dir, export.SafeFileName(st.IDNumber())+".txt")
	if err := filex.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		a.notify(ctx, "save card", err)
		return err
	}

	fmt.Fprintf(a.out, "Report card saved as: %s\n", path)
	return nil
}

// Report saves the scores sheet for the whole roster.
func (a *App) Report(ctx context.Context) error {
	if a.students.Len() == 0 {
		fmt.Fprintln(a.out, "No student data to print.")
		return nil
	}

	var buf bytes.Buffer
	if err := export.WriteTable(&buf, reportTitle, slices.Collect(a.students.All())); err != nil {
		a.notify(ctx, "save report", err)
		return err
	}

	path := filepath.Join(a.config.DataDir, common.ReportFileName)
	if err := filex.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		a.notify(ctx, "save report", err)
		return err
	}

	fmt.Fprintf(a.out, "Scores sheet saved as %s\n", path)
	return nil
}
