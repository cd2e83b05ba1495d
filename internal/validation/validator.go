// Package validation holds the per-entity create and update checks. The checks
// never touch the store.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"teahouse/internal/apperrors"
	"teahouse/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	datePattern     = regexp.MustCompile(`^\d{2}-\d{2}-\d{2}$`)
	timePattern     = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	timeSlotPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`)
)

var validate = newValidator()

// Result is the outcome of a validation. Errors holds one message per failed rule.
type Result struct {
	Valid  bool
	Errors []string
}

// Err returns nil for a valid result, else apperrors.ErrValidation carrying the
// messages as details.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return apperrors.ErrValidation.WithDetails(r.Errors...)
}

func result(errs []string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// ids are validated as their string form, whichever JSON kind they came in
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if id, ok := field.Interface().(models.LogicalID); ok {
			return id.String()
		}
		return nil
	}, models.LogicalID{})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "trimmin", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
	})
	mustRegister(v, "ddmmyy", func(fl validator.FieldLevel) bool {
		return datePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "optdate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || datePattern.MatchString(s)
	})
	mustRegister(v, "hhmm", func(fl validator.FieldLevel) bool {
		return timePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "timeslot", func(fl validator.FieldLevel) bool {
		return timeSlotPattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// structErrors runs the tag rules of s and renders every failure. prefix is
// prepended to field names, e.g. "products[2].".
func structErrors(s interface{}, prefix string) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, message(prefix+e.Field(), e))
	}
	return out
}

func message(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", field)
	case "notblank":
		return fmt.Sprintf("field '%s' must be a non-empty string", field)
	case "trimmin":
		return fmt.Sprintf("field '%s' must be at least %s characters long", field, e.Param())
	case "gt":
		return fmt.Sprintf("field '%s' must be a number greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("field '%s' must be a number not less than %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("field '%s' must be a valid email", field)
	case "ddmmyy":
		return fmt.Sprintf("field '%s' must use the DD-MM-YY format (e.g. 15-10-24)", field)
	case "optdate":
		return fmt.Sprintf("field '%s' must be empty or use the DD-MM-YY format (e.g. 09-10-24)", field)
	case "hhmm":
		return fmt.Sprintf("field '%s' must use the HH:MM format (e.g. 15:00)", field)
	case "timeslot":
		return fmt.Sprintf("field '%s' must use the HH:MM-HH:MM format (e.g. 14:00-15:00)", field)
	default:
		return fmt.Sprintf("field '%s' failed on the '%s' tag", field, e.Tag())
	}
}

// presentFields returns the JSON fields actually supplied in an input struct.
func presentFields(in interface{}) map[string]interface{} {
	fields, err := models.ToFields(in)
	if err != nil {
		return map[string]interface{}{}
	}
	return fields
}

func requireFields(fields map[string]interface{}, names ...string) []string {
	var errs []string
	for _, name := range names {
		if _, ok := fields[name]; !ok {
			errs = append(errs, fmt.Sprintf("field '%s' is required", name))
		}
	}
	return errs
}

// checkCreate verifies the mandatory fields are present and the supplied ones
// satisfy their rules.
func checkCreate(in interface{}, required ...string) []string {
	errs := requireFields(presentFields(in), required...)
	return append(errs, structErrors(in, "")...)
}

// checkUpdate verifies at least one field was supplied and the supplied ones
// satisfy their rules.
func checkUpdate(in interface{}) []string {
	if len(presentFields(in)) == 0 {
		return []string{"at least one field must be provided for update"}
	}
	return structErrors(in, "")
}
