// Package budgeterror defines the error types surfaced at the tool's boundaries.
package budgeterror

import "fmt"

// InputFormatError reports a transaction file that does not match the expected
// bank-export schema. It is fatal for the file it names; batch processing
// continues with the remaining files.
type InputFormatError struct {
	File   string
	Column string
	Msg    string
}

func (e *InputFormatError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("invalid transaction file '%s': missing required column '%s'", e.File, e.Column)
	}
	return fmt.Sprintf("invalid transaction file '%s': %s", e.File, e.Msg)
}

// DuplicateNameError reports a rename that would collide with an existing
// different dictionary entry. The original entry is retained.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate name detected: %s, retaining original entry", e.Name)
}

// PersistenceError reports a failed write of the category table or the output
// workbook. In-memory state is not rolled back; the session continues with
// unsaved changes flagged as at-risk.
type PersistenceError struct {
	Path string
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s '%s': %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
