package rules

import (
	"sort"

	"github.com/JasperK04/KTP/internal/facts"
	"github.com/JasperK04/KTP/internal/kb"
)

// FiredRule records one rule firing for the session trace. The trace is the
// primary diagnostic for knowledge-base content bugs: it shows which rules
// fired, in which pass, and what each actually changed.
type FiredRule struct {
	RuleID   string   `yaml:"rule_id"`
	Context  string   `yaml:"context,omitempty"`
	Priority int      `yaml:"priority"`
	Pass     int      `yaml:"pass"`
	Changes  []string `yaml:"changes"`
}

// Evaluator runs forward chaining over one session. It owns the fire-once
// bookkeeping, so an Evaluator must not be shared between sessions.
type Evaluator struct {
	rules []kb.Rule // priority-descending, declaration order on ties
	fired map[string]bool
	trace []FiredRule
	pass  int
}

// New builds an evaluator for the knowledge base's rules. Rules are ordered
// by descending priority; declaration order breaks ties so evaluation is
// deterministic.
func New(k *kb.KnowledgeBase) *Evaluator {
	ordered := make([]kb.Rule, len(k.Rules))
	copy(ordered, k.Rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})
	return &Evaluator{
		rules: ordered,
		fired: make(map[string]bool),
	}
}

// Infer runs passes over the not-yet-fired rules until a full pass fires
// nothing, or every rule has fired. Each pass fires at least one rule or ends
// the loop, so the chain completes in at most one pass per rule. Returns the
// number of rules fired by this call.
//
// Re-running Infer on an unchanged store is idempotent: every satisfiable
// rule has already fired and nothing new happens.
func (e *Evaluator) Infer(st *facts.Store, req *facts.Requirements) int {
	total := 0
	for {
		firedThisPass := 0
		remaining := 0
		e.pass++

		for _, rule := range e.rules {
			if e.fired[rule.ID] {
				continue
			}
			remaining++
			if !EvalCondition(rule.When, st) {
				continue
			}

			changes := make([]string, 0, len(rule.Effects))
			for _, eff := range rule.Effects {
				changes = append(changes, req.Apply(eff)...)
			}
			e.fired[rule.ID] = true
			e.trace = append(e.trace, FiredRule{
				RuleID:   rule.ID,
				Context:  rule.Context,
				Priority: rule.Priority,
				Pass:     e.pass,
				Changes:  changes,
			})
			firedThisPass++
		}

		total += firedThisPass
		if firedThisPass == 0 || remaining == firedThisPass {
			return total
		}
	}
}

// Fired reports whether the rule with the given id has fired this session.
func (e *Evaluator) Fired(id string) bool {
	return e.fired[id]
}

// FiredCount returns how many rules have fired this session.
func (e *Evaluator) FiredCount() int {
	return len(e.fired)
}

// Trace returns the chronological firing record.
func (e *Evaluator) Trace() []FiredRule {
	out := make([]FiredRule, len(e.trace))
	copy(out, e.trace)
	return out
}

// Passes returns how many evaluation passes have run this session.
func (e *Evaluator) Passes() int {
	return e.pass
}
