package model

import (
	"sort"
	"strings"
)

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

// Error implements error.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Clear removes the entries of the given fields.
func (e FieldErrors) Clear(fields ...string) {
	for _, f := range fields {
		delete(e, f)
	}
}
