package loader

import "fmt"

// NotFoundError indicates the input path does not resolve to a readable file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input not found: %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// EmptyInputError indicates the file is empty or has a header but no data rows.
type EmptyInputError struct {
	Path string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("empty input: %s has no data rows", e.Path)
}

// MalformedInputError indicates a structural or decoding failure after both
// encoding attempts.
type MalformedInputError struct {
	Path string
	Err  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s: %v", e.Path, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }
