// Package matcher filters the fastener catalog against the derived
// requirements and the case facts, and annotates each qualifying fastener
// with the suggestion rules that apply to it.
//
// Matching is binary: every gate must pass, a single failure disqualifies the
// fastener, and there is no scoring or ranking. Qualifying fasteners keep
// catalog declaration order. An empty result is a valid outcome, not an
// error.
package matcher

import (
	"strings"

	"github.com/JasperK04/KTP/internal/facts"
	"github.com/JasperK04/KTP/internal/kb"
	"github.com/JasperK04/KTP/internal/rules"
)

// Recommendation pairs a qualifying fastener with the advisory texts that
// apply to it, in suggestion-rule declaration order.
type Recommendation struct {
	Fastener    *kb.Fastener
	Suggestions []string
}

// Match evaluates every catalog fastener and returns the qualifying ones with
// their suggestions.
func Match(k *kb.KnowledgeBase, st *facts.Store, req *facts.Requirements) []Recommendation {
	var out []Recommendation
	for i := range k.Fasteners {
		f := &k.Fasteners[i]
		if !Qualifies(f, st, req) {
			continue
		}
		out = append(out, Recommendation{
			Fastener:    f,
			Suggestions: suggestionsFor(k, f, st),
		})
	}
	return out
}

// Qualifies runs all gates for one fastener.
func Qualifies(f *kb.Fastener, st *facts.Store, req *facts.Requirements) bool {
	// Category and exclusion gates.
	if !req.CategoryAllowed(f.Category) {
		return false
	}
	if req.ItemExcluded(f.Name) {
		return false
	}

	// Ordinal gates: every floor must be met on its scale.
	if !f.TensileStrength.AtLeast(req.MinTensileStrength()) {
		return false
	}
	if !f.ShearStrength.AtLeast(req.MinShearStrength()) {
		return false
	}
	if !f.WaterResistance.AtLeast(req.MinWaterResistance()) {
		return false
	}
	if !f.TemperatureResistance.AtLeast(req.MinTemperatureResistance()) {
		return false
	}
	if !f.UVResistance.AtLeast(req.MinUVResistance()) {
		return false
	}
	if !f.VibrationResistance.AtLeast(req.MinVibrationResistance()) {
		return false
	}
	if !f.ChemicalResistance.AtLeast(req.MinChemicalResistance()) {
		return false
	}

	// Membership gates.
	if !materialsCompatible(f, st) {
		return false
	}
	if !req.RigidityAllowed(f.Rigidity) {
		return false
	}
	if !permanenceCompatible(f, st) {
		return false
	}

	// Boolean gates.
	if req.FlexibilityRequired() && !f.Rigidity.Flexible() {
		return false
	}
	if st.Bool(kb.FactOneSideAccessible) && f.RequiresTwoSidedAccess {
		return false
	}

	return true
}

// materialsCompatible requires every stated case material to appear in the
// fastener's compatible-material list. Unstated materials do not constrain.
func materialsCompatible(f *kb.Fastener, st *facts.Store) bool {
	for _, path := range []string{kb.FactMaterialA, kb.FactMaterialB} {
		if m := st.String(path); m != "" && !f.CompatibleWith(m) {
			return false
		}
	}
	return true
}

// permanenceCompatible requires an exact permanence match, except that a
// semi_permanent case accepts any class.
func permanenceCompatible(f *kb.Fastener, st *facts.Store) bool {
	want := st.String(kb.FactPermanence)
	if want == "" || kb.Permanence(want) == kb.PermanenceSemiPermanent {
		return true
	}
	return kb.Permanence(want) == f.Permanence
}

// suggestionsFor collects the advisory texts of every suggestion rule that
// applies to the fastener and whose fact condition holds, in declaration
// order.
func suggestionsFor(k *kb.KnowledgeBase, f *kb.Fastener, st *facts.Store) []string {
	var texts []string
	for _, s := range k.Suggestions {
		if !appliesTo(&s, f) {
			continue
		}
		if len(s.When) > 0 && !rules.EvalCondition(s.When, st) {
			continue
		}
		texts = append(texts, s.Text)
	}
	return texts
}

// appliesTo matches the suggestion's applies_to entries against the
// fastener: "all", its category name, or a case-insensitive name substring.
func appliesTo(s *kb.SuggestionRule, f *kb.Fastener) bool {
	name := strings.ToLower(f.Name)
	for _, pattern := range s.AppliesTo {
		if pattern == "all" {
			return true
		}
		if pattern == string(f.Category) {
			return true
		}
		if strings.Contains(name, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}
