package model

import "fmt"

// ErrorKind classifies why a file failed to produce a record.
type ErrorKind string

const (
	KindFileNotFound      ErrorKind = "file_not_found"
	KindEmptyFile         ErrorKind = "empty_file"
	KindMalformedXML      ErrorKind = "xml_parse_error"
	KindExtractionFailure ErrorKind = "extraction_error"
	KindUnexpectedFailure ErrorKind = "unexpected_error"
)

// ProcessError is the terminal error state for one input file. Failures are
// never raised past the per-file driver; they are classified into one of the
// ErrorKind values and flow alongside successful results.
type ProcessError struct {
	Path   string
	Kind   ErrorKind
	Detail string
	Cause  error
}

func (e *ProcessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Kind, e.Path, e.Detail, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Path, e.Detail)
}

func (e *ProcessError) Unwrap() error {
	return e.Cause
}

// NewProcessError creates a classified per-file error.
func NewProcessError(path string, kind ErrorKind, detail string, cause error) *ProcessError {
	return &ProcessError{
		Path:   path,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ExtractionError represents an unexpected condition inside section
// extraction or normalization, after the XML itself parsed.
type ExtractionError struct {
	Section string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed [%s]: %s (%v)", e.Section, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed [%s]: %s", e.Section, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NewExtractionError creates a new extraction error.
func NewExtractionError(section, message string, cause error) *ExtractionError {
	return &ExtractionError{
		Section: section,
		Message: message,
		Cause:   cause,
	}
}
