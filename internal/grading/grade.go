// Package grading maps assessment totals to letter grades.
//
// The ladder uses inclusive lower bounds:
//
//	total >= 70  A
//	total >= 60  B
//	total >= 50  C
//	total >= 45  D
//	total >= 40  E
//	otherwise    F
//
// Grade is total over every int, including values outside the 0..100 score
// domain, so callers never need to handle an error from it.
package grading

import "strings"

// Letter is a letter grade.
type Letter string

const (
	A Letter = "A"
	B Letter = "B"
	C Letter = "C"
	D Letter = "D"
	E Letter = "E"
	F Letter = "F"
)

// Score domains of the three assessment components.
const (
	MaxCA        = 30
	MaxPractical = 20
	MaxExam      = 50
	MaxTotal     = MaxCA + MaxPractical + MaxExam
)

type threshold struct {
	min    int
	letter Letter
}

var ladder = []threshold{
	{70, A},
	{60, B},
	{50, C},
	{45, D},
	{40, E},
}

// Grade returns the letter for total.
func Grade(total int) Letter {
	for _, t := range ladder {
		if total >= t.min {
			return t.letter
		}
	}
	return F
}

// Letters returns every letter in ascending order (A first).
func Letters() []Letter {
	return []Letter{A, B, C, D, E, F}
}

// Rank is the position of l in Letters (A=0 ... F=5), or -1 for an unknown letter.
func Rank(l Letter) int {
	for i, x := range Letters() {
		if x == l {
			return i
		}
	}
	return -1
}

// ParseLetter parses s case-insensitively.
func ParseLetter(s string) (Letter, bool) {
	l := Letter(strings.ToUpper(strings.TrimSpace(s)))
	if Rank(l) < 0 {
		return "", false
	}
	return l, true
}

func (l Letter) String() string { return string(l) }
