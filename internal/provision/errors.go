package provision

import (
	"fmt"
	"strings"
)

// FieldIssue describes one invalid input field.
type FieldIssue struct {
	Field  string
	Detail string
}

// InvalidInputError reports malformed or missing user input. It is detected
// entirely locally, before any remote call, and aggregates every failing
// field so the caller can correct them all in one pass.
type InvalidInputError struct {
	Issues []FieldIssue
}

func (e *InvalidInputError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid input"
	}

	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Detail))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// RemoteOperationError reports a failure returned by the cloud provider
// during one provisioning step. It is fatal to the execution and is never
// retried; resources created by earlier steps remain in place.
type RemoteOperationError struct {
	Step string
	Err  error
}

func (e *RemoteOperationError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *RemoteOperationError) Unwrap() error {
	return e.Err
}
