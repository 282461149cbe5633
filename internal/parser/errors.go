package parser

import "fmt"

// MalformedDocumentError means the payload is not well-formed XML at all.
type MalformedDocumentError struct {
	Line int
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed XML document at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed XML document: %v", e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// ParseFailure is the single error Parse returns. It wraps whatever went
// wrong, including a *MalformedDocumentError.
type ParseFailure struct {
	Err error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("failed to parse mine XML: %v", e.Err)
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}
