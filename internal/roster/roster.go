// Package roster is the in-memory student roster and its persistence policy.
//
// The Store keeps records in insertion order and writes a full snapshot
// after every mutation (Add, Update, Delete). There is no batching: once a
// mutating call returns nil its effect is on disk. If the write fails the
// in-memory change is undone and the error (wrapping common.ErrStorage) is
// returned, so memory and snapshot never diverge.
//
// The Store performs no range validation; validate input with
// models.ValidateStudentInput before calling it.
package roster

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/grading"
	"github.com/dmitrijs2005/gradesys/internal/logging"
	"github.com/dmitrijs2005/gradesys/internal/models"
)

// AllGrades is the grade filter value that matches every record.
const AllGrades = "All Grades"

// Snapshotter loads and saves the complete roster. Loading an absent
// snapshot yields an empty roster and no error.
type Snapshotter interface {
	Load(ctx context.Context) ([]*models.Student, error)
	Save(ctx context.Context, students []*models.Student) error
}

// StudentUpdate carries the mutable fields of a record. The id number is
// the key and cannot be changed.
type StudentUpdate struct {
	Name      string
	CA        int
	Practical int
	Exam      int
}

type Store struct {
	students []*models.Student
	snap     Snapshotter
	log      logging.Logger
}

// Open loads the roster from snap.
func Open(ctx context.Context, snap Snapshotter, log logging.Logger) (*Store, error) {
	students, err := snap.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	log.Info(ctx, "roster loaded", "records", len(students))
	return &Store{students: students, snap: snap, log: log}, nil
}

func (s *Store) Len() int { return len(s.students) }

// Add appends a copy of st and persists. Duplicate id numbers are accepted
// (and logged), matching the historical data files.
func (s *Store) Add(ctx context.Context, st *models.Student) error {
	if _, dup := s.Find(st.IDNumber()); dup {
		s.log.Warn(ctx, "adding duplicate id number", "id_number", st.IDNumber())
	}

	prev := s.students
	s.students = append(slices.Clip(prev), st.Clone())
	if err := s.persist(ctx, prev); err != nil {
		return err
	}
	s.log.Info(ctx, "student added", "id_number", st.IDNumber())
	return nil
}

// Update replaces name and scores of the first record with id and persists.
func (s *Store) Update(ctx context.Context, id string, upd StudentUpdate) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("update %s: %w", models.NormalizeID(id), common.ErrNotFound)
	}

	prev := s.students
	next := slices.Clone(prev)
	st := next[i].Clone()
	st.SetName(upd.Name)
	st.SetScores(upd.CA, upd.Practical, upd.Exam)
	next[i] = st

	s.students = next
	if err := s.persist(ctx, prev); err != nil {
		return err
	}
	s.log.Info(ctx, "student updated", "id_number", st.IDNumber(), "total", st.Total(), "grade", st.Grade())
	return nil
}

// Delete removes every record with id and persists. It returns how many
// records were removed.
func (s *Store) Delete(ctx context.Context, id string) (int, error) {
	key := models.NormalizeID(id)

	prev := s.students
	next := slices.DeleteFunc(slices.Clone(prev), func(st *models.Student) bool {
		return st.IDNumber() == key
	})
	removed := len(prev) - len(next)
	if removed == 0 {
		return 0, fmt.Errorf("delete %s: %w", key, common.ErrNotFound)
	}

	s.students = next
	if err := s.persist(ctx, prev); err != nil {
		return 0, err
	}
	s.log.Info(ctx, "student deleted", "id_number", key, "removed", removed)
	return removed, nil
}

// Find returns a copy of the first record with id.
func (s *Store) Find(id string) (*models.Student, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	return s.students[i].Clone(), true
}

// Query returns copies of the records whose name contains nameSubstring
// (trimmed, case-insensitive) and whose grade matches gradeFilter, in roster
// order. Every call re-scans the current roster.
func (s *Store) Query(nameSubstring, gradeFilter string) []*models.Student {
	return slices.Collect(s.Filter(nameSubstring, gradeFilter))
}

// Filter is the lazy form of Query. The sequence is restartable and reads
// the roster as it is at iteration time.
func (s *Store) Filter(nameSubstring, gradeFilter string) iter.Seq[*models.Student] {
	needle := strings.ToLower(strings.TrimSpace(nameSubstring))
	letter, all := parseFilter(gradeFilter)

	return func(yield func(*models.Student) bool) {
		for _, st := range s.students {
			if !all && st.Grade() != letter {
				continue
			}
			if !strings.Contains(strings.ToLower(st.Name()), needle) {
				continue
			}
			if !yield(st.Clone()) {
				return
			}
		}
	}
}

// All yields copies of every record in roster order.
func (s *Store) All() iter.Seq[*models.Student] {
	return s.Filter("", AllGrades)
}

// DistinctGrades returns the letters present in the roster, ascending.
func (s *Store) DistinctGrades() []grading.Letter {
	seen := make(map[grading.Letter]bool, 6)
	for _, st := range s.students {
		seen[st.Grade()] = true
	}
	out := make([]grading.Letter, 0, len(seen))
	for _, l := range grading.Letters() {
		if seen[l] {
			out = append(out, l)
		}
	}
	return out
}

// FilterChoices returns AllGrades followed by DistinctGrades, the options of
// the grade filter.
func (s *Store) FilterChoices() []string {
	out := []string{AllGrades}
	for _, l := range s.DistinctGrades() {
		out = append(out, string(l))
	}
	return out
}

func (s *Store) index(id string) int {
	key := models.NormalizeID(id)
	return slices.IndexFunc(s.students, func(st *models.Student) bool {
		return st.IDNumber() == key
	})
}

// persist writes the current roster; on failure it restores prev.
func (s *Store) persist(ctx context.Context, prev []*models.Student) error {
	if err := s.snap.Save(ctx, s.students); err != nil {
		s.students = prev
		s.log.Error(ctx, "roster save failed", "error", err)
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}

// parseFilter reports the letter to match, or all=true for "", "All" and
// AllGrades. An unknown filter matches nothing.
func parseFilter(f string) (letter grading.Letter, all bool) {
	f = strings.TrimSpace(f)
	if f == "" || strings.EqualFold(f, "all") || strings.EqualFold(f, AllGrades) {
		return "", true
	}
	if l, ok := grading.ParseLetter(f); ok {
		return l, false
	}
	return grading.Letter(f), false
}
