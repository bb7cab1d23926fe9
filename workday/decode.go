package workday

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMissingEntries = errors.New("document has no Report_Entry list")

// DecodeError means the export as a whole did not have the expected shape.
// It is never a per-record problem.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode report: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type reportDocument struct {
	Entries *[]Entry `json:"Report_Entry"`
}

// Decode parses a raw export. A non-string field value anywhere in the list,
// malformed JSON, or a missing Report_Entry key fails the whole document.
func Decode(content []byte) (*Report, error) {
	var document reportDocument
	if err := json.Unmarshal(content, &document); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if document.Entries == nil {
		return nil, &DecodeError{Err: ErrMissingEntries}
	}

	return &Report{Entries: *document.Entries}, nil
}
