// Package validate wraps go-playground/validator with the front-desk
// validation rules: required-field presence (the numeric value 0 counts as
// present), a phone rule for contact numbers, a strict email shape, an age
// range, and enum checks. Error messages match the strings the API reports
// to clients.
package validate

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate

	// local@domain.tld shape
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// >=10 characters drawn from digits, spaces and + - ( ), checked after
	// stripping whitespace
	phoneRe = regexp.MustCompile(`^[\d\s\-+()]{10,}$`)
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report json names instead of Go field names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			clean := strings.Join(strings.Fields(fl.Field().String()), "")
			return phoneRe.MatchString(clean)
		})
		v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
			return emailRe.MatchString(fl.Field().String())
		})
		v.RegisterValidation("agerange", func(fl validator.FieldLevel) bool {
			age := fl.Field().Int()
			return age >= 0 && age <= 150
		})

		instance = v
	})
	return instance
}

// FieldError describes a single failed rule.
type FieldError struct {
	Name  string      // json field name
	Label string      // human label used in messages
	Tag   string      // rule that failed
	Param string      // rule parameter, if any
	Value interface{} // the offending value
}

// Message renders the user-facing message for this failure.
func (e FieldError) Message() string {
	switch e.Tag {
	case "required":
		return e.Label + " is required"
	case "phone":
		return e.Label + " must be at least 10 digits"
	case "emailshape":
		return "Invalid email format"
	case "agerange":
		return "Age must be a valid number between 0 and 150"
	case "oneof":
		return "Invalid " + e.Label + " value. Must be one of: " + joinOneOf(e.Param)
	default:
		return e.Label + " is invalid"
	}
}

// Errors aggregates all failed rules for a request struct.
type Errors struct {
	All []FieldError
}

func (e *Errors) Error() string {
	msgs := make([]string, 0, len(e.All))
	for _, fe := range e.All {
		msgs = append(msgs, fe.Message())
	}
	return strings.Join(msgs, "; ")
}

// Missing returns the json names of fields that failed the required rule.
func (e *Errors) Missing() []string {
	var names []string
	for _, fe := range e.All {
		if fe.Tag == "required" {
			names = append(names, fe.Name)
		}
	}
	return names
}

// First returns the first non-required failure, preserving the order rules
// are declared on the struct.
func (e *Errors) First() (FieldError, bool) {
	for _, fe := range e.All {
		if fe.Tag != "required" {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Struct validates s and returns nil when every rule passes.
func Struct(s interface{}) *Errors {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &Errors{All: []FieldError{{Name: "request", Label: "Request", Tag: "invalid"}}}
	}

	out := &Errors{}
	for _, fe := range verrs {
		out.All = append(out.All, FieldError{
			Name:  fe.Field(),
			Label: labelFor(s, fe.StructField(), fe.Field()),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return out
}

// labelFor resolves the `label` struct tag for the failed field, falling back
// to the json name.
func labelFor(s interface{}, structField, jsonName string) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(structField); ok {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
		}
	}
	return jsonName
}

// joinOneOf turns a oneof parameter list like `Male Female Other` or
// `'Active' 'Inactive' 'On Leave'` into a comma-separated display list.
func joinOneOf(param string) string {
	var vals []string
	fields := splitQuoted(param)
	for _, f := range fields {
		vals = append(vals, strings.Trim(f, "'"))
	}
	return strings.Join(vals, ", ")
}

// splitQuoted splits on spaces but keeps single-quoted segments intact.
func splitQuoted(s string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '\'':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ' ' && !inQuote:
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
