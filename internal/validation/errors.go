package validation

// FieldErrors maps dotted/indexed field paths (for example
// "people.2.fullName" or "documents.0.title") to human-readable messages,
// so a caller can map every violation back to a form field.
type FieldErrors map[string]string

// Error reports a rejected submission. It carries the complete field error
// map; nothing was persisted.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	return "submitted data is not valid"
}

// ErrorFor returns a *Error wrapping the given field map.
func ErrorFor(fields FieldErrors) *Error {
	return &Error{Fields: fields}
}
