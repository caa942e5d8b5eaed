package model

import "fmt"

// InputFormatError reports request input that could not be parsed or is
// otherwise unusable: bad numeric fields, missing files, disallowed
// extensions, undecodable images.
type InputFormatError struct {
	Field  string
	Reason string
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnknownCategoryError reports a categorical value absent from an encoder
// vocabulary. Encoders are fitted at training time and never re-fit, so
// this is fatal for the request.
type UnknownCategoryError struct {
	Encoder string
	Value   string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("%s encoder: unknown category %q", e.Encoder, e.Value)
}

// ModelError wraps a failure inside a scorer.
type ModelError struct {
	Op  string
	Err error
}

func (e *ModelError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *ModelError) Unwrap() error { return e.Err }
