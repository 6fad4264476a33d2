package credentials

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/filex"
)

// JSONFile keeps every credential in one JSON object (users.json).
type JSONFile struct {
	path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (j *JSONFile) List(ctx context.Context) (map[string]string, error) {
	users := make(map[string]string)

	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return users, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrStorage, j.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", common.ErrStorage, j.path, err)
	}
	return users, nil
}

func (j *JSONFile) Get(ctx context.Context, username string) (string, error) {
	users, err := j.List(ctx)
	if err != nil {
		return "", err
	}
	hash, ok := users[username]
	if !ok {
		return "", common.ErrNotFound
	}
	return hash, nil
}

// Set rewrites the whole file with username's hash inserted or replaced.
func (j *JSONFile) Set(ctx context.Context, username, hash string) error {
	users, err := j.List(ctx)
	if err != nil {
		return err
	}
	users[username] = hash

	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%w: encode users: %v", common.ErrStorage, err)
	}
	if err := filex.WriteFileAtomic(j.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}
