package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, username string) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx, `SELECT hash FROM credentials WHERE username = ?`, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: failed to get credential[%s]: %v", common.ErrStorage, username, err)
	}
	return hash, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, username, hash string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (username, hash) VALUES (?, ?)
		ON CONFLICT(username) DO UPDATE SET hash = excluded.hash
	`, username, hash)
	if err != nil {
		return fmt.Errorf("%w: failed to set credential[%s]: %v", common.ErrStorage, username, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username, hash FROM credentials`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list credentials: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var username, hash string
		if err := rows.Scan(&username, &hash); err != nil {
			return nil, fmt.Errorf("%w: failed to scan credential row: %v", common.ErrStorage, err)
		}
		result[username] = hash
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate credential rows: %v", common.ErrStorage, err)
	}
	return result, nil
}
