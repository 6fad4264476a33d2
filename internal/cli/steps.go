package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/grading"
	"github.com/dmitrijs2005/gradesys/internal/models"
)

// Wizard navigation words.
const (
	stepBack   = "<"
	stepCancel = "cancel"
)

type stepKind int

const (
	stepText stepKind = iota
	stepInt
)

// step describes one wizard page. tag is a validator tag checked against the
// parsed value; current, when set, is kept on an empty answer.
type step struct {
	kind    stepKind
	label   string
	title   string
	tag     string
	current string
}

// Validate parses raw for the step's kind and checks it against the tag.
// Text values come back trimmed, int values as int.
func (s step) Validate(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" && s.current != "" {
		raw = s.current
	}

	switch s.kind {
	case stepInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a whole number", common.ErrValidation, s.label)
		}
		return n, models.ValidateField(s.label, n, s.tag)
	default:
		return raw, models.ValidateField(s.label, raw, s.tag)
	}
}

func (s step) prompt(i, n int) string {
	p := fmt.Sprintf("Step %d of %d: %s", i+1, n, s.title)
	if s.current != "" {
		p += fmt.Sprintf(" [%s]", s.current)
	}
	return p
}

func nameStep(current string) step {
	return step{kind: stepText, label: "Name", title: "Student Name", tag: models.TagName, current: current}
}

func idStep() step {
	return step{kind: stepText, label: "ID Number", title: "ID Number (e.g. CSC/22U/0001)", tag: models.TagIDNumber}
}

func scoreSteps(ca, practical, exam string) []step {
	return []step{
		{kind: stepInt, label: "CA", title: fmt.Sprintf("C.A (0-%d)", grading.MaxCA), tag: models.TagCA, current: ca},
		{kind: stepInt, label: "Practical", title: fmt.Sprintf("Practical (0-%d)", grading.MaxPractical), tag: models.TagPractical, current: practical},
		{kind: stepInt, label: "Exam", title: fmt.Sprintf("Exam (0-%d)", grading.MaxExam), tag: models.TagExam, current: exam},
	}
}

// runSteps walks the user through steps. "<" goes back one step and
// "cancel" abandons the wizard, in which case ok is false and nothing has
// been changed. Invalid answers are explained and asked again.
func (a *App) runSteps(ctx context.Context, steps []step) (values []any, ok bool, err error) {
	fmt.Fprintf(a.out, "Type %q to go back or %q to abort.\n", stepBack, stepCancel)

	values = make([]any, len(steps))
	for i := 0; i < len(steps); {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		raw, err := getSimpleText(a.reader, steps[i].prompt(i, len(steps)), a.out)
		if err != nil {
			return nil, false, err
		}

		switch strings.ToLower(raw) {
		case stepCancel:
			fmt.Fprintln(a.out, "Cancelled.")
			return nil, false, nil
		case stepBack:
			if i > 0 {
				i--
			}
			continue
		}

		v, err := steps[i].Validate(raw)
		if err != nil {
			fmt.Fprintln(a.out, userMessage(err, common.ErrValidation))
			continue
		}
		values[i] = v
		i++
	}
	return values, true, nil
}
