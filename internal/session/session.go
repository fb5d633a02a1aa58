// Package session ties the engine together for one consultation: it
// validates answers, writes them into the fact store, runs the rule
// evaluator to a fixed point after every answer, and produces
// recommendations on demand.
//
// A Session is single-threaded by design: each answer triggers an immediate,
// complete re-evaluation before control returns. The knowledge base is
// read-only and may be shared; sessions never share mutable state.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JasperK04/KTP/internal/facts"
	"github.com/JasperK04/KTP/internal/kb"
	"github.com/JasperK04/KTP/internal/matcher"
	"github.com/JasperK04/KTP/internal/rules"
)

// AuditEntry is one question/answer event in the chronological trail.
type AuditEntry struct {
	QuestionID   string    `yaml:"question_id"`
	QuestionText string    `yaml:"question_text"`
	Answer       any       `yaml:"answer"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// Session is one consultation over a knowledge base.
type Session struct {
	ID string

	kb      *kb.KnowledgeBase
	store   *facts.Store
	req     *facts.Requirements
	eval    *rules.Evaluator
	answers map[string]any
	skipped map[string]bool
	audit   []AuditEntry

	log *zap.Logger
	now func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithClock overrides the timestamp source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New starts a session with an empty fact store and a fresh evaluator.
func New(k *kb.KnowledgeBase, opts ...Option) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		kb:      k,
		store:   facts.NewStore(),
		req:     facts.NewRequirements(),
		eval:    rules.New(k),
		answers: make(map[string]any),
		skipped: make(map[string]bool),
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ApplyAnswer validates raw against the question's declared kind and choice
// domain, writes it into the facts, records the audit entry, then runs the
// rule evaluator to a fixed point. On *InvalidAnswerError the fact store is
// left unmodified.
func (s *Session) ApplyAnswer(questionID string, raw any) error {
	q := s.kb.Question(questionID)
	if q == nil {
		return &InvalidAnswerError{QuestionID: questionID, Value: raw, Reason: "unknown question"}
	}

	value, err := s.coerce(q, raw)
	if err != nil {
		return err
	}

	s.store.Set(q.Fact, value)
	if def, ok := kb.FactDefFor(q.Fact); ok && def.Type == kb.FactMaterial {
		s.applyMaterial(q.Fact, value.(string))
	}

	s.answers[questionID] = value
	s.audit = append(s.audit, AuditEntry{
		QuestionID:   questionID,
		QuestionText: q.Text,
		Answer:       value,
		Timestamp:    s.now(),
	})

	fired := s.eval.Infer(s.store, s.req)
	s.log.Debug("answer applied",
		zap.String("session", s.ID),
		zap.String("question", questionID),
		zap.Any("answer", value),
		zap.Int("rules_fired", fired))
	return nil
}

// coerce validates and normalizes a raw answer. Booleans additionally accept
// the strings "true"/"false" and "yes"/"no" so thin front ends need no
// conversion logic of their own.
func (s *Session) coerce(q *kb.Question, raw any) (any, error) {
	switch q.Kind {
	case kb.AnswerBoolean:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			switch v {
			case "true", "yes":
				return true, nil
			case "false", "no":
				return false, nil
			}
		}
		return nil, &InvalidAnswerError{QuestionID: q.ID, Value: raw, Reason: "expected yes or no"}

	case kb.AnswerChoice:
		str, ok := raw.(string)
		if !ok {
			return nil, &InvalidAnswerError{QuestionID: q.ID, Value: raw, Reason: "expected a choice value"}
		}
		for _, c := range q.Choices {
			if c == str {
				return str, nil
			}
		}
		return nil, &InvalidAnswerError{
			QuestionID: q.ID,
			Value:      raw,
			Reason:     fmt.Sprintf("not one of %v", q.Choices),
		}
	}
	return nil, &InvalidAnswerError{QuestionID: q.ID, Value: raw, Reason: "question has no answer kind"}
}

// applyMaterial expands a material-type answer into the material's intrinsic
// property facts, so rules can reason over brittleness and base strength
// without asking for them.
func (s *Session) applyMaterial(typePath, materialType string) {
	m := s.kb.Material(materialType)
	if m == nil {
		return
	}
	prefix := typePath[:len(typePath)-len(".type")]
	s.store.Set(prefix+".porosity", m.Porosity)
	s.store.Set(prefix+".brittleness", m.Brittleness)
	s.store.Set(prefix+".base_strength", string(m.BaseStrength))
}

// Answered reports whether the question has been answered this session.
func (s *Session) Answered(questionID string) bool {
	_, ok := s.answers[questionID]
	return ok
}

// Requirements returns a read-only snapshot of the derived requirements.
func (s *Session) Requirements() facts.Snapshot {
	return s.req.Snapshot()
}

// Facts returns the current facts keyed by attribute path.
func (s *Session) Facts() map[string]any {
	return s.store.Snapshot()
}

// Trace returns the chronological fired-rule record.
func (s *Session) Trace() []rules.FiredRule {
	return s.eval.Trace()
}

// Audit returns the chronological question/answer trail.
func (s *Session) Audit() []AuditEntry {
	out := make([]AuditEntry, len(s.audit))
	copy(out, s.audit)
	return out
}

// Recommend runs the matcher against the current facts and requirements. It
// may be called at any point, including mid-session, to answer "what if I
// stopped here". An empty list means no catalog item satisfies the derived
// constraints; that is a valid outcome, not an error.
func (s *Session) Recommend() []matcher.Recommendation {
	recs := matcher.Match(s.kb, s.store, s.req)
	s.log.Debug("recommendation computed",
		zap.String("session", s.ID),
		zap.Int("qualifying", len(recs)))
	return recs
}
