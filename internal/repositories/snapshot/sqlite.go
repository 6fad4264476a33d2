package snapshot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/dbx"
	"github.com/dmitrijs2005/gradesys/internal/models"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (r *SQLite) Load(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, id_number, ca, practical, exam FROM students ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query students: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		var (
			name, id            string
			ca, practical, exam int
		)
		if err := rows.Scan(&name, &id, &ca, &practical, &exam); err != nil {
			return nil, fmt.Errorf("%w: failed to scan student row: %v", common.ErrStorage, err)
		}
		students = append(students, models.NewStudent(name, id, ca, practical, exam))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate student rows: %v", common.ErrStorage, err)
	}
	return students, nil
}

// Save replaces the whole table with students in one transaction.
func (r *SQLite) Save(ctx context.Context, students []*models.Student) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM students`); err != nil {
			return fmt.Errorf("failed to clear students: %w", err)
		}
		for pos, s := range students {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO students (position, name, id_number, ca, practical, exam, total, grade)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				pos, s.Name(), s.IDNumber(), s.CA(), s.Practical(), s.Exam(), s.Total(), string(s.Grade()))
			if err != nil {
				return fmt.Errorf("failed to insert student %s: %w", s.IDNumber(), err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}
