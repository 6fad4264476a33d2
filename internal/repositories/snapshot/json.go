package snapshot

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
	"github.com/dmitrijs2005/gradesys/internal/models"
)

type JSONFile struct {
	path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (j *JSONFile) Path() string { return j.path }

func (j *JSONFile) Load(ctx context.Context) ([]*models.Student, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*models.Student{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrStorage, j.path, err)
	}

	students := []*models.Student{}
	if len(bytes.TrimSpace(data)) == 0 {
		return students, nil
	}
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", common.ErrStorage, j.path, err)
	}

	out := students[:0]
	for _, s := range students {
		if s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (j *JSONFile) Save(ctx context.Context, students []*models.Student) error {
	if students == nil {
		students = []*models.Student{}
	}
	data, err := json.MarshalIndent(students, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode roster: %v", common.ErrStorage, err)
	}
	if err := filex.WriteFileAtomic(j.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}
