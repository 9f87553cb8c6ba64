package edit

import (
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the document.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes two edits whose ranges overlap.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.Start, e.Edit1.End,
		e.Edit2.Start, e.Edit2.End)
}

// Validate checks that every edit lies within a document of contentLen bytes.
// It returns the first problem found.
func Validate(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		if edit.Start < 0 {
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.End < edit.Start {
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		}
		if edit.End > contentLen {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.End, contentLen),
			}
		}
	}

	return nil
}

// Sort orders edits by start, then end. Insertions at the same offset keep
// their relative order.
func Sort(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}

		return a.End - b.End
	})
}

// DetectConflicts reports the first pair of overlapping edits in a sorted
// slice. Edits that merely touch do not conflict.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		prev := edits[i-1]
		curr := edits[i]
		if curr.Start < prev.End {
			return &ConflictError{Edit1: prev, Edit2: curr}
		}
	}

	return nil
}

// Prepare validates a copy of edits, sorts it and rejects overlaps. No-op
// edits are dropped.
func Prepare(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	if err := Validate(edits, contentLen); err != nil {
		return nil, err
	}

	result := make([]TextEdit, 0, len(edits))
	for _, edit := range edits {
		if !edit.IsNoop() {
			result = append(result, edit)
		}
	}
	Sort(result)

	if err := DetectConflicts(result); err != nil {
		return nil, err
	}

	return result, nil
}
