// Package models defines the student record and its input validation.
package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gradesys/internal/grading"
)

// DisplayHeader is the fixed column order used by exports and reports.
var DisplayHeader = [7]string{"Name", "ID Number", "CA", "Practical", "Exam", "Total", "Grade"}

// Student is one roster entry. Total and grade are derived from the three
// scores and are recomputed by every mutator, so they can never go stale.
// Scores are not range-checked here; see ValidateStudentInput.
type Student struct {
	name      string
	idNumber  string
	ca        int
	practical int
	exam      int
	total     int
	grade     grading.Letter
}

// NewStudent builds a record, uppercasing idNumber and deriving total/grade.
func NewStudent(name, idNumber string, ca, practical, exam int) *Student {
	s := &Student{
		name:     name,
		idNumber: NormalizeID(idNumber),
	}
	s.SetScores(ca, practical, exam)
	return s
}

// NormalizeID returns the canonical (uppercase) form of an id number.
// Surrounding whitespace is kept; input boundaries trim before building a record.
func NormalizeID(id string) string {
	return strings.ToUpper(id)
}

func (s *Student) Name() string          { return s.name }
func (s *Student) IDNumber() string      { return s.idNumber }
func (s *Student) CA() int               { return s.ca }
func (s *Student) Practical() int        { return s.practical }
func (s *Student) Exam() int             { return s.exam }
func (s *Student) Total() int            { return s.total }
func (s *Student) Grade() grading.Letter { return s.grade }

// SetName replaces the display name. The id number is immutable.
func (s *Student) SetName(name string) {
	s.name = name
}

// SetScores replaces all three scores and recomputes total and grade.
func (s *Student) SetScores(ca, practical, exam int) {
	s.ca = ca
	s.practical = practical
	s.exam = exam
	s.total = ca + practical + exam
	s.grade = grading.Grade(s.total)
}

// Clone returns an independent copy.
func (s *Student) Clone() *Student {
	c := *s
	return &c
}

// DisplayFields returns the record in DisplayHeader order.
func (s *Student) DisplayFields() [7]string {
	return [7]string{
		s.name,
		s.idNumber,
		strconv.Itoa(s.ca),
		strconv.Itoa(s.practical),
		strconv.Itoa(s.exam),
		strconv.Itoa(s.total),
		string(s.grade),
	}
}

// studentJSON is the on-disk shape of a record.
type studentJSON struct {
	Name      string         `json:"name"`
	IDNumber  string         `json:"id_number"`
	CA        int            `json:"ca"`
	Practical int            `json:"practical"`
	Exam      int            `json:"exam"`
	Total     int            `json:"total"`
	Grade     grading.Letter `json:"grade"`
}

// MarshalJSON writes the full state including derived fields.
func (s *Student) MarshalJSON() ([]byte, error) {
	return json.Marshal(studentJSON{
		Name:      s.name,
		IDNumber:  s.idNumber,
		CA:        s.ca,
		Practical: s.practical,
		Exam:      s.exam,
		Total:     s.total,
		Grade:     s.grade,
	})
}

// UnmarshalJSON reads name, id and scores. Missing scores default to 0 and
// a missing id to "". Stored total and grade are ignored and recomputed.
func (s *Student) UnmarshalJSON(data []byte) error {
	var raw studentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = *NewStudent(raw.Name, raw.IDNumber, raw.CA, raw.Practical, raw.Exam)
	return nil
}
