package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/olegiv/wordalign/internal/model"
)

// Field error messages.
const (
	msgRequired = "This field is required."
	msgBlank    = "This field may not be blank."
)

// fieldErrors collects per-field validation messages.
type fieldErrors map[string]string

// requireText trims *v in place and records an error when it is missing or blank.
func (fe fieldErrors) requireText(field string, v *string) {
	if v == nil {
		fe[field] = msgRequired
		return
	}
	*v = strings.TrimSpace(*v)
	if *v == "" {
		fe[field] = msgBlank
	}
}

// optionalText trims *v in place and records an error when present but blank.
func (fe fieldErrors) optionalText(field string, v *string) {
	if v == nil {
		return
	}
	*v = strings.TrimSpace(*v)
	if *v == "" {
		fe[field] = msgBlank
	}
}

// requireLanguage validates a required language code.
func (fe fieldErrors) requireLanguage(field string, v *string) {
	fe.requireText(field, v)
	if _, failed := fe[field]; failed {
		return
	}
	if utf8.RuneCountInString(*v) > model.MaxLanguageCodeLength {
		fe[field] = fmt.Sprintf("Ensure this field has no more than %d characters.", model.MaxLanguageCodeLength)
	}
}

// requireIndices records an error when an index list is missing or null.
func (fe fieldErrors) requireIndices(field string, v model.Indices) {
	if v == nil {
		fe[field] = msgRequired
	}
}

func (fe fieldErrors) empty() bool {
	return len(fe) == 0
}
