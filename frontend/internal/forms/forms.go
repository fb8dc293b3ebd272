// Package forms carries what a form page needs after a failed submission: the field
// errors reported by the backend and the values the user typed.
package forms

import (
	"encoding/json"
	"net/url"
	"sort"
)

// FieldErrors maps a field name to its messages.
type FieldErrors map[string][]string

type validationPayload struct {
	Message string      `json:"message"`
	Errors  FieldErrors `json:"errors"`
}

// ParseFieldErrors reads a 422 body of the form {"message": .., "errors": {field: [..]}}.
// The returned message is the summary line; errs is nil when the body has no field errors.
func ParseFieldErrors(body []byte) (message string, errs FieldErrors) {
	var p validationPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return "", nil
	}
	if len(p.Errors) == 0 {
		return p.Message, nil
	}
	return p.Message, p.Errors
}

func (e FieldErrors) Has(field string) bool { return len(e[field]) > 0 }

// First is the message shown under the field.
func (e FieldErrors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e FieldErrors) Add(field, msg string) FieldErrors {
	if e == nil {
		e = FieldErrors{}
	}
	e[field] = append(e[field], msg)
	return e
}

// Fields lists the fields with errors in a stable order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Values keeps submitted form values for re-rendering.
type Values map[string]string

// FormValues copies the first value of each of the named fields.
func FormValues(form url.Values, fields ...string) Values {
	v := make(Values, len(fields))
	for _, f := range fields {
		v[f] = form.Get(f)
	}
	return v
}

func (v Values) Get(field string) string { return v[field] }

// State is what a form template receives.
type State struct {
	Values  Values
	Errors  FieldErrors
	Message string
}
