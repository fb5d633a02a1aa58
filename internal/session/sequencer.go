package session

import (
	"github.com/JasperK04/KTP/internal/kb"
	"github.com/JasperK04/KTP/internal/rules"
)

// NextQuestion returns the first question, in declaration order, that has
// not been answered or skipped and whose ask_if condition holds over the
// current facts. A question gated on an unanswered fact is not applicable
// yet; it becomes applicable once the gating answer arrives. Returns nil
// when no further question applies.
func (s *Session) NextQuestion() *kb.Question {
	for i := range s.kb.Questions {
		q := &s.kb.Questions[i]
		if s.Answered(q.ID) || s.skipped[q.ID] {
			continue
		}
		if len(q.AskIf) > 0 && !rules.EvalCondition(q.AskIf, s.store) {
			continue
		}
		return q
	}
	return nil
}

// Skip marks a question as declined so NextQuestion moves past it. Skipping
// writes no fact: rules conditioned on the attribute simply never fire.
func (s *Session) Skip(questionID string) {
	s.skipped[questionID] = true
}

// Explain returns the human-readable reasons a question is asked.
func (s *Session) Explain(questionID string) []string {
	q := s.kb.Question(questionID)
	if q == nil || len(q.HelpsRules) == 0 {
		return []string{"This question helps specify the fastening task."}
	}
	return q.HelpsRules
}
