package entity

import "fmt"

// UnknownSchemaError indicates a schema name that was never registered.
type UnknownSchemaError struct {
	Schema string
}

func (e UnknownSchemaError) Error() string {
	return "unknown schema: " + e.Schema
}

// UnexpectedFieldError indicates a declared field the schema does not define.
type UnexpectedFieldError struct {
	Schema string
	Field  string
}

func (e UnexpectedFieldError) Error() string {
	return fmt.Sprintf("unexpected field %q for schema %q", e.Field, e.Schema)
}

// MissingFieldError indicates a required field with no declared value and no
// default.
type MissingFieldError struct {
	Schema string
	Field  string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q for schema %q", e.Field, e.Schema)
}

// ValidationError indicates a field value that failed its declared validator.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid value for field %q: %s", e.Field, e.Reason)
}

// ProviderTypeMismatchError indicates a provider spec whose declared kind
// resolves to a different provider type than the substrate it is attached to.
type ProviderTypeMismatchError struct {
	SubstrateType string
	SpecType      string
	Context       string
}

func (e ProviderTypeMismatchError) Error() string {
	return fmt.Sprintf("provider type mismatch between substrate (%s) and spec (%s) at %s",
		e.SubstrateType, e.SpecType, e.Context)
}
