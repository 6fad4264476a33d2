package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/grading"
)

const (
	notBlankTag  = "notblank"
	notBlankText = "{0} must not be blank"
)

// Validation tags for the individual input fields, shared with the
// interactive add/update steps. The struct tags below must carry the same
// limits.
var (
	TagName      = "required," + notBlankTag
	TagIDNumber  = "required," + notBlankTag
	TagCA        = fmt.Sprintf("min=0,max=%d", grading.MaxCA)
	TagPractical = fmt.Sprintf("min=0,max=%d", grading.MaxPractical)
	TagExam      = fmt.Sprintf("min=0,max=%d", grading.MaxExam)
)

// StudentInput is caller-supplied data for a new or updated record.
type StudentInput struct {
	Name      string `json:"name" validate:"required,notblank"`
	IDNumber  string `json:"id_number" validate:"required,notblank"`
	CA        int    `json:"ca" validate:"min=0,max=30"`
	Practical int    `json:"practical" validate:"min=0,max=20"`
	Exam      int    `json:"exam" validate:"min=0,max=50"`
}

// Student builds the record described by in. Call ValidateStudentInput first.
func (in StudentInput) Student() *Student {
	return NewStudent(strings.TrimSpace(in.Name), strings.TrimSpace(in.IDNumber), in.CA, in.Practical, in.Exam)
}

// ScoresInput is the editable part of an existing record; the id number is
// the key and stays fixed.
type ScoresInput struct {
	Name      string `json:"name" validate:"required,notblank"`
	CA        int    `json:"ca" validate:"min=0,max=30"`
	Practical int    `json:"practical" validate:"min=0,max=20"`
	Exam      int    `json:"exam" validate:"min=0,max=50"`
}

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	translator, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// report json names ("ca") instead of Go names ("CA")
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(t ut.Translator) error { return t.Add(notBlankTag, notBlankText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(notBlankTag, fe.Field())
			return s
		},
	)
}

// ValidateStudentInput checks required text fields and score domains.
// The returned error wraps common.ErrValidation.
func ValidateStudentInput(in StudentInput) error {
	return validateStruct(in)
}

// ValidateScoresInput is ValidateStudentInput for updates.
func ValidateScoresInput(in ScoresInput) error {
	return validateStruct(in)
}

func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(translator))
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, "; "))
}

// ValidateField checks a single value against tag, naming it label in the
// message (e.g. "CA must be 30 or less").
func ValidateField(label string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %s: %v", common.ErrValidation, label, err)
	}
	msg := strings.TrimSpace(verrs[0].Translate(translator))
	return fmt.Errorf("%w: %s %s", common.ErrValidation, label, msg)
}
