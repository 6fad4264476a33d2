package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/export"
	"github.com/dmitrijs2005/gradesys/internal/models"
	"github.com/dmitrijs2005/gradesys/internal/roster"
)

// parseListArgs splits "list" arguments into a name search and a grade
// filter given with -g (or -g=X). Everything else is search text.
func parseListArgs(args []string) (search, grade string) {
	var words []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-g" || arg == "--grade":
			if i+1 < len(args) {
				grade = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "-g="):
			grade = strings.TrimPrefix(arg, "-g=")
		case strings.HasPrefix(arg, "--grade="):
			grade = strings.TrimPrefix(arg, "--grade=")
		default:
			words = append(words, arg)
		}
	}
	return strings.Join(words, " "), grade
}

// List prints the roster table, optionally filtered.
func (a *App) List(ctx context.Context, args []string) error {
	search, grade := parseListArgs(args)
	rows := a.students.Query(search, grade)
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No matching students.")
		return nil
	}
	if err := export.WriteTable(a.out, "", rows); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d of %d student(s)\n", len(rows), a.students.Len())
	return nil
}

// Grades prints the grade filter choices.
func (a *App) Grades(ctx context.Context) error {
	fmt.Fprintln(a.out, strings.Join(a.students.FilterChoices(), ", "))
	return nil
}

// Show prints one student card.
func (a *App) Show(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	st, ok := a.students.Find(id)
	if !ok {
		fmt.Fprintf(a.out, "No student with ID %s.\n", models.NormalizeID(id))
		return common.ErrNotFound
	}
	return export.WriteCard(a.out, "", st)
}

// Add runs the five-step wizard and appends the student.
func (a *App) Add(ctx context.Context) error {
	steps := append([]step{nameStep(""), idStep()}, scoreSteps("", "", "")...)
	values, ok, err := a.runSteps(ctx, steps)
	if err != nil || !ok {
		return err
	}

	in := models.StudentInput{
		Name:      values[0].(string),
		IDNumber:  values[1].(string),
		CA:        values[2].(int),
		Practical: values[3].(int),
		Exam:      values[4].(int),
	}
	if err := models.ValidateStudentInput(in); err != nil {
		a.notify(ctx, "add student", err)
		return err
	}

	st := in.Student()
	if _, dup := a.students.Find(st.IDNumber()); dup {
		fmt.Fprintf(a.out, "Note: another student already has ID %s.\n", st.IDNumber())
	}
	if err := a.students.Add(ctx, st); err != nil {
		a.notify(ctx, "add student", err)
		return err
	}

	fmt.Fprintf(a.out, "Added %s (%s): total %d, grade %s.\n", st.Name(), st.IDNumber(), st.Total(), st.Grade())
	return nil
}

// Update edits the name and scores of the student with id. An empty answer
// keeps the current value; the id itself cannot change.
func (a *App) Update(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	st, found := a.students.Find(id)
	if !found {
		fmt.Fprintf(a.out, "No student with ID %s.\n", models.NormalizeID(id))
		return common.ErrNotFound
	}

	steps := append([]step{nameStep(st.Name())},
		scoreSteps(strconv.Itoa(st.CA()), strconv.Itoa(st.Practical()), strconv.Itoa(st.Exam()))...)
	values, ok, err := a.runSteps(ctx, steps)
	if err != nil || !ok {
		return err
	}

	in := models.ScoresInput{
		Name:      values[0].(string),
		CA:        values[1].(int),
		Practical: values[2].(int),
		Exam:      values[3].(int),
	}
	if err := models.ValidateScoresInput(in); err != nil {
		a.notify(ctx, "update student", err)
		return err
	}

	upd := roster.StudentUpdate{Name: in.Name, CA: in.CA, Practical: in.Practical, Exam: in.Exam}
	if err := a.students.Update(ctx, st.IDNumber(), upd); err != nil {
		a.notify(ctx, "update student", err)
		return err
	}

	st, _ = a.students.Find(st.IDNumber())
	fmt.Fprintf(a.out, "Updated %s (%s): total %d, grade %s.\n", st.Name(), st.IDNumber(), st.Total(), st.Grade())
	return nil
}

// Delete removes every student with id after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	st, found := a.students.Find(id)
	if !found {
		fmt.Fprintf(a.out, "No student with ID %s.\n", models.NormalizeID(id))
		return common.ErrNotFound
	}

	yes, err := getConfirmation(a.reader, fmt.Sprintf("Delete %s (%s)?", st.Name(), st.IDNumber()), a.out)
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(a.out, "Nothing deleted.")
		return nil
	}

	n, err := a.students.Delete(ctx, st.IDNumber())
	if err != nil {
		a.notify(ctx, "delete student", err)
		return err
	}
	fmt.Fprintf(a.out, "Deleted %d record(s) with ID %s.\n", n, st.IDNumber())
	return nil
}
