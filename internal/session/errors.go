package session

import "fmt"

// InvalidAnswerError reports an answer outside a question's declared domain,
// or an answer to an unknown question. It is recoverable: the fact store is
// left untouched and the caller should re-prompt.
type InvalidAnswerError struct {
	QuestionID string
	Value      any
	Reason     string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer %v for question %q: %s", e.Value, e.QuestionID, e.Reason)
}
