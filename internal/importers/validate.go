package importers

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/davinci-coder-club/clubsite/internal/entities"
)

// emailTag is the custom rule for member email addresses: one "@", no
// whitespace and a dot in the domain.
const emailTag = "club_email"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator checks normalized records against the struct tags declared on
// the entity types. Only the first failing rule of a record is reported.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()

	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(emailTag, func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// ValidateMember requires a name and a well-formed email.
func (v *Validator) ValidateMember(m *entities.Member, row int) error {
	return v.check(m, EntityMember, row, m.Name)
}

// ValidateProject requires a title.
func (v *Validator) ValidateProject(p *entities.Project, row int) error {
	return v.check(p, EntityProject, row, p.Title)
}

// ValidateEvent requires a title and a venue. Dates never fail because the
// normalizer always supplies one.
func (v *Validator) ValidateEvent(e *entities.Event, row int) error {
	return v.check(e, EntityEvent, row, e.Title)
}

func (v *Validator) check(record any, entity EntityType, row int, label string) error {
	err := v.validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	first := fieldErrs[0]
	value, _ := first.Value().(string)
	return &ValidationError{
		Entity: entity,
		Row:    row,
		Label:  label,
		Field:  first.Field(),
		Rule:   first.Tag(),
		Value:  value,
	}
}
