package schema

import (
	"fmt"
	"strings"
)

// ValidationError describes a single schema violation at a JSON path.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Result collects the violations found in one validation pass.
type Result struct {
	Errors []ValidationError
}

// Valid reports whether the value conformed to the schema.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Messages returns one line per violation.
func (r *Result) Messages() []string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return msgs
}

func (r *Result) add(field, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate checks a decoded JSON value against a schema. Violations are
// collected, never coerced: a response missing a required field or carrying
// an out-of-enum value fails as a whole.
func Validate(value interface{}, s *Schema) *Result {
	res := &Result{}
	validateValue("$", value, s, res)
	return res
}

func validateValue(path string, value interface{}, s *Schema, res *Result) {
	switch s.Type {
	case TypeString:
		str, ok := value.(string)
		if !ok {
			res.add(path, fmt.Sprintf("expected string, got %T", value))
			return
		}
		if len(s.Enum) > 0 && !containsString(s.Enum, str) {
			res.add(path, fmt.Sprintf("value %q must be one of %s", str, strings.Join(s.Enum, ", ")))
		}
	case TypeNumber:
		// encoding/json decodes every JSON number as float64
		if _, ok := value.(float64); !ok {
			res.add(path, fmt.Sprintf("expected number, got %T", value))
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			res.add(path, fmt.Sprintf("expected boolean, got %T", value))
		}
	case TypeArray:
		arr, ok := value.([]interface{})
		if !ok {
			res.add(path, fmt.Sprintf("expected array, got %T", value))
			return
		}
		if s.Items != nil {
			for i, item := range arr {
				validateValue(fmt.Sprintf("%s[%d]", path, i), item, s.Items, res)
			}
		}
	case TypeObject:
		obj, ok := value.(map[string]interface{})
		if !ok {
			res.add(path, fmt.Sprintf("expected object, got %T", value))
			return
		}
		for _, name := range s.Required {
			if _, exists := obj[name]; !exists {
				res.add(path+"."+name, "required field missing")
			}
		}
		for name, prop := range s.Properties {
			v, exists := obj[name]
			if !exists {
				continue
			}
			validateValue(path+"."+name, v, prop, res)
		}
	default:
		res.add(path, fmt.Sprintf("unknown schema type %q", s.Type))
	}
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
