package validation

import (
	"net/mail"
	"sort"
	"strings"
)

// Violations maps a field name to an i18n message code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Error lets a non-empty Violations travel as an error.
func (v Violations) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Err returns v as an error, or nil when there is nothing to report.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Email only checks the shape of an address; an empty value is left to Required.
func Email(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@")+1:], ".") {
		v[field] = "invalid_email"
	}
}

// OneOf records code when value is not accepted by ok.
func OneOf(field, value, code string, ok func(string) bool, v Violations) {
	if !ok(value) {
		v[field] = code
	}
}
