package models

import "fmt"

// Validation error codes.
const (
	CodeMissing = "missing_field"
	CodeInvalid = "invalid_value"
)

// ValidationError reports malformed input with a machine-readable code and
// the path of the offending field. It aborts processing of the one dataset
// it belongs to; the caller decides whether to continue with others.
type ValidationError struct {
	Code  string
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation %s at %s: %s", e.Code, e.Field, e.Msg)
}

// Validate checks the structural requirements of a raw series payload.
// It returns the first problem found as a *ValidationError.
func (in *SeriesInput) Validate() error {
	if in == nil {
		return &ValidationError{Code: CodeMissing, Field: "", Msg: "input is nil"}
	}
	if in.Series == "" {
		return &ValidationError{Code: CodeMissing, Field: "series", Msg: "series name required"}
	}
	if in.Issues == nil {
		return &ValidationError{Code: CodeMissing, Field: "issues", Msg: "issue list required"}
	}
	for i, issue := range in.Issues {
		if issue.IssueNumber <= 0 {
			return &ValidationError{
				Code:  CodeInvalid,
				Field: fmt.Sprintf("issues[%d].issueNumber", i),
				Msg:   fmt.Sprintf("must be a positive integer, got %d", issue.IssueNumber),
			}
		}
		if issue.Antagonists == nil {
			return &ValidationError{
				Code:  CodeMissing,
				Field: fmt.Sprintf("issues[%d].antagonists", i),
				Msg:   "antagonist list required (may be empty, not absent)",
			}
		}
		for j, m := range issue.Antagonists {
			if m.Name == "" {
				return &ValidationError{
					Code:  CodeMissing,
					Field: fmt.Sprintf("issues[%d].antagonists[%d].name", i, j),
					Msg:   "mention name required",
				}
			}
		}
	}
	return nil
}
