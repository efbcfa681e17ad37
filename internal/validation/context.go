// Package validation accumulates field-level validation errors during
// registration. Errors are collected rather than returned: an empty
// context after validation is the success signal.
package validation

// FieldError is a validation failure attached to a named field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Context collects field errors over the course of one operation
type Context struct {
	errs []FieldError
}

// NewContext creates an empty validation context
func NewContext() *Context {
	return &Context{}
}

// AddError records a field error
func (c *Context) AddError(field, message string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any errors were recorded
func (c *Context) HasErrors() bool {
	return len(c.errs) > 0
}

// Errors returns the recorded errors in insertion order
func (c *Context) Errors() []FieldError {
	return c.errs
}
