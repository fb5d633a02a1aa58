package session

import (
	"time"

	"github.com/JasperK04/KTP/internal/facts"
	"github.com/JasperK04/KTP/internal/kb"
	"github.com/JasperK04/KTP/internal/rules"
)

// Snapshot is the full debug state of a session at one point in time. It is
// a plain data structure: the session exposes it, an external writer decides
// where (and whether) to persist it.
type Snapshot struct {
	SessionID string    `yaml:"session_id"`
	Timestamp time.Time `yaml:"timestamp"`

	Answers map[string]any `yaml:"answers"`
	Facts   map[string]any `yaml:"facts"`

	DerivedRequirements facts.Snapshot    `yaml:"derived_requirements"`
	FiredRules          []rules.FiredRule `yaml:"fired_rules"`

	RecommendationCount int                      `yaml:"recommendation_count"`
	Recommendations     []RecommendationSnapshot `yaml:"recommendations"`

	QuestionHistory []AuditEntry `yaml:"question_history"`
}

// RecommendationSnapshot is the serializable view of one qualifying
// fastener.
type RecommendationSnapshot struct {
	Name            string           `yaml:"name"`
	Category        kb.Category      `yaml:"category"`
	TensileStrength kb.StrengthLevel `yaml:"tensile_strength"`
	ShearStrength   kb.StrengthLevel `yaml:"shear_strength"`
	Rigidity        kb.Rigidity      `yaml:"rigidity"`
	Permanence      kb.Permanence    `yaml:"permanence"`
	Suggestions     []string         `yaml:"suggestions,omitempty"`
}

// Snapshot captures the complete current state: facts, requirements, fired
// rules, qualifying fasteners with suggestions, and the audit trail.
func (s *Session) Snapshot() Snapshot {
	recs := s.Recommend()
	recSnaps := make([]RecommendationSnapshot, 0, len(recs))
	for _, r := range recs {
		recSnaps = append(recSnaps, RecommendationSnapshot{
			Name:            r.Fastener.Name,
			Category:        r.Fastener.Category,
			TensileStrength: r.Fastener.TensileStrength,
			ShearStrength:   r.Fastener.ShearStrength,
			Rigidity:        r.Fastener.Rigidity,
			Permanence:      r.Fastener.Permanence,
			Suggestions:     r.Suggestions,
		})
	}

	answers := make(map[string]any, len(s.answers))
	for id, v := range s.answers {
		answers[id] = v
	}

	return Snapshot{
		SessionID:           s.ID,
		Timestamp:           s.now(),
		Answers:             answers,
		Facts:               s.store.Snapshot(),
		DerivedRequirements: s.req.Snapshot(),
		FiredRules:          s.eval.Trace(),
		RecommendationCount: len(recSnaps),
		Recommendations:     recSnaps,
		QuestionHistory:     s.Audit(),
	}
}
