package evaluator

import "fmt"

// Failure reasons attached to Error and used as the failure metric label.
const (
	ReasonTimeout = "timeout"
	ReasonAPI     = "api"
	ReasonParse   = "parse"
	ReasonSchema  = "schema"
)

// Error describes one failed model evaluation. The consensus layer drops the
// evaluation and records the reason; a failed backend never aborts the
// scoring request.
type Error struct {
	Backend string
	Model   string
	Reason  string
	Err     error
}

func (e *Error) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("%s evaluation (%s): %s: %v", e.Backend, e.Model, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s evaluation: %s: %v", e.Backend, e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
