package kb

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the raw YAML shape of a knowledge base file.
type document struct {
	Questions   []Question      `yaml:"questions"`
	Materials   []Material      `yaml:"materials"`
	Fasteners   []Fastener      `yaml:"fasteners"`
	Rules       []rawRule       `yaml:"rules"`
	Suggestions []rawSuggestion `yaml:"suggestion_rules"`
}

type rawRule struct {
	ID       string    `yaml:"id"`
	Context  string    `yaml:"context"`
	Priority int       `yaml:"priority"`
	When     Condition `yaml:"when"`
	Effect   yaml.Node `yaml:"effect"`
}

type rawSuggestion struct {
	ID        string    `yaml:"id"`
	AppliesTo []string  `yaml:"applies_to"`
	When      Condition `yaml:"when,omitempty"`
	Text      string    `yaml:"text"`
}

// Load reads and validates a knowledge base file.
func Load(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	k, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return k, nil
}

// Parse validates a serialized knowledge base document and produces the
// in-memory collections. The first structural problem is returned as a
// *SchemaError.
func Parse(data []byte) (*KnowledgeBase, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &SchemaError{Section: "document", Reason: err.Error()}
	}

	k := &KnowledgeBase{
		Questions: doc.Questions,
		Materials: doc.Materials,
		Fasteners: doc.Fasteners,
	}

	if err := validateMaterials(k.Materials); err != nil {
		return nil, err
	}
	if err := validateQuestions(k.Questions, k.Materials); err != nil {
		return nil, err
	}
	if err := validateFasteners(k.Fasteners, k.Materials); err != nil {
		return nil, err
	}

	rules, err := buildRules(doc.Rules)
	if err != nil {
		return nil, err
	}
	k.Rules = rules

	suggestions, err := buildSuggestions(doc.Suggestions)
	if err != nil {
		return nil, err
	}
	k.Suggestions = suggestions

	k.index()
	return k, nil
}

func validateMaterials(materials []Material) error {
	if len(materials) == 0 {
		return schemaErrf("materials", "", "at least one material is required")
	}
	seen := make(map[string]bool, len(materials))
	for i, m := range materials {
		loc := m.Type
		if loc == "" {
			loc = fmt.Sprintf("#%d", i)
			return schemaErrf("materials", loc, "missing type")
		}
		if seen[m.Type] {
			return schemaErrf("materials", loc, "duplicate material type")
		}
		seen[m.Type] = true
		if m.Porosity == "" || m.Brittleness == "" {
			return schemaErrf("materials", loc, "porosity and brittleness are required")
		}
		if m.BaseStrength.Index() < 0 {
			return schemaErrf("materials", loc, "invalid base_strength %q", m.BaseStrength)
		}
	}
	return nil
}

func validateQuestions(questions []Question, materials []Material) error {
	if len(questions) == 0 {
		return schemaErrf("questions", "", "at least one question is required")
	}
	materialTypes := make(map[string]bool, len(materials))
	for _, m := range materials {
		materialTypes[m.Type] = true
	}

	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		loc := q.ID
		if loc == "" {
			return schemaErrf("questions", fmt.Sprintf("#%d", i), "missing id")
		}
		if seen[q.ID] {
			return schemaErrf("questions", loc, "duplicate question id")
		}
		seen[q.ID] = true

		if q.Text == "" {
			return schemaErrf("questions", loc, "missing text")
		}
		if q.Fact == "" {
			return schemaErrf("questions", loc, "missing fact attribute path")
		}
		def, known := FactDefFor(q.Fact)
		if !known {
			return schemaErrf("questions", loc, "fact path %q is not in the attribute schema", q.Fact)
		}

		switch q.Kind {
		case AnswerBoolean:
			if len(q.Choices) > 0 {
				return schemaErrf("questions", loc, "boolean question must not declare choices")
			}
			if def.Type != FactBool {
				return schemaErrf("questions", loc, "fact %q is not boolean", q.Fact)
			}
		case AnswerChoice:
			if len(q.Choices) == 0 {
				return schemaErrf("questions", loc, "choice question requires a choice list")
			}
			for _, c := range q.Choices {
				switch def.Type {
				case FactMaterial:
					if !materialTypes[c] {
						return schemaErrf("questions", loc, "choice %q is not a declared material", c)
					}
				case FactEnum:
					if !inStrings(def.Enum, c) {
						return schemaErrf("questions", loc, "choice %q outside declared domain of %q", c, q.Fact)
					}
				default:
					return schemaErrf("questions", loc, "fact %q does not take enumerated answers", q.Fact)
				}
			}
		default:
			return schemaErrf("questions", loc, "unknown answer kind %q", q.Kind)
		}
	}
	return nil
}

func validateFasteners(fasteners []Fastener, materials []Material) error {
	if len(fasteners) == 0 {
		return schemaErrf("fasteners", "", "catalog is empty")
	}
	materialTypes := make(map[string]bool, len(materials))
	for _, m := range materials {
		materialTypes[m.Type] = true
	}

	seen := make(map[string]bool, len(fasteners))
	for i, f := range fasteners {
		loc := f.Name
		if loc == "" {
			return schemaErrf("fasteners", fmt.Sprintf("#%d", i), "missing name")
		}
		if seen[f.Name] {
			return schemaErrf("fasteners", loc, "duplicate fastener name")
		}
		seen[f.Name] = true

		if !validCategories[f.Category] {
			return schemaErrf("fasteners", loc, "invalid category %q", f.Category)
		}
		if len(f.CompatibleMaterials) == 0 {
			return schemaErrf("fasteners", loc, "compatible_materials is required")
		}
		for _, m := range f.CompatibleMaterials {
			if !materialTypes[m] {
				return schemaErrf("fasteners", loc, "compatible material %q is not declared", m)
			}
		}
		if f.TensileStrength.Index() < 0 {
			return schemaErrf("fasteners", loc, "invalid tensile_strength %q", f.TensileStrength)
		}
		if f.ShearStrength.Index() < 0 {
			return schemaErrf("fasteners", loc, "invalid shear_strength %q", f.ShearStrength)
		}
		for attr, lvl := range map[string]ResistanceLevel{
			"water_resistance":       f.WaterResistance,
			"temperature_resistance": f.TemperatureResistance,
			"uv_resistance":          f.UVResistance,
			"vibration_resistance":   f.VibrationResistance,
			"chemical_resistance":    f.ChemicalResistance,
		} {
			if lvl.Index() < 0 {
				return schemaErrf("fasteners", loc, "invalid %s %q", attr, lvl)
			}
		}
		if !validRigidities[f.Rigidity] {
			return schemaErrf("fasteners", loc, "invalid rigidity %q", f.Rigidity)
		}
		if !validPermanences[f.Permanence] {
			return schemaErrf("fasteners", loc, "invalid permanence %q", f.Permanence)
		}
	}
	return nil
}

func buildRules(raws []rawRule) ([]Rule, error) {
	rules := make([]Rule, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	for i, r := range raws {
		loc := r.ID
		if loc == "" {
			return nil, schemaErrf("rules", fmt.Sprintf("#%d", i), "missing id")
		}
		if seen[r.ID] {
			return nil, schemaErrf("rules", loc, "duplicate rule id")
		}
		seen[r.ID] = true

		if len(r.When) == 0 {
			return nil, schemaErrf("rules", loc, "missing condition")
		}

		effects, err := parseEffects(r.Effect)
		if err != nil {
			return nil, schemaErrf("rules", loc, "%v", err)
		}
		if len(effects) == 0 {
			return nil, schemaErrf("rules", loc, "missing effect")
		}
		for _, eff := range effects {
			if err := validateEffect(eff); err != nil {
				return nil, schemaErrf("rules", loc, "%v", err)
			}
		}

		rules = append(rules, Rule{
			ID:       r.ID,
			Context:  r.Context,
			Priority: r.Priority,
			When:     r.When,
			Effects:  effects,
		})
	}
	return rules, nil
}

// parseEffects decodes the effect mapping preserving declaration order.
func parseEffects(node yaml.Node) ([]Effect, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("effect must be a mapping")
	}
	effects := make([]Effect, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return nil, err
		}
		var val any
		if err := node.Content[i+1].Decode(&val); err != nil {
			return nil, err
		}
		effects = append(effects, Effect{Key: key, Value: val})
	}
	return effects, nil
}

func validateEffect(eff Effect) error {
	if !KnownEffect(eff.Key) {
		return fmt.Errorf("unknown effect key %q", eff.Key)
	}

	switch {
	case StrengthEffect(eff.Key):
		s, ok := eff.Value.(string)
		if !ok {
			return fmt.Errorf("effect %s requires a strength level", eff.Key)
		}
		if _, err := ParseStrength(s); err != nil {
			return fmt.Errorf("effect %s: %w", eff.Key, err)
		}

	case ResistanceEffect(eff.Key):
		s, ok := eff.Value.(string)
		if !ok {
			return fmt.Errorf("effect %s requires a resistance level", eff.Key)
		}
		if _, err := ParseResistance(s); err != nil {
			return fmt.Errorf("effect %s: %w", eff.Key, err)
		}

	case eff.Key == EffectAllowedCategories || eff.Key == EffectExcludedCategories:
		vals, err := effectStrings(eff)
		if err != nil {
			return err
		}
		for _, v := range vals {
			if _, err := ParseCategory(v); err != nil {
				return fmt.Errorf("effect %s: %w", eff.Key, err)
			}
		}

	case eff.Key == EffectAllowedRigidities:
		vals, err := effectStrings(eff)
		if err != nil {
			return err
		}
		for _, v := range vals {
			if _, err := ParseRigidity(v); err != nil {
				return fmt.Errorf("effect %s: %w", eff.Key, err)
			}
		}

	case eff.Key == EffectExcludedItems:
		if _, err := effectStrings(eff); err != nil {
			return err
		}

	case eff.Key == EffectRequireFlexibility:
		if _, ok := eff.Value.(bool); !ok {
			return fmt.Errorf("effect %s requires a boolean", eff.Key)
		}
	}
	return nil
}

// effectStrings coerces a set-valued effect into its string elements.
func effectStrings(eff Effect) ([]string, error) {
	list, ok := eff.Value.([]any)
	if !ok {
		return nil, fmt.Errorf("effect %s requires a list", eff.Key)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("effect %s: empty list", eff.Key)
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("effect %s: non-string element %v", eff.Key, v)
		}
		out = append(out, s)
	}
	return out, nil
}

// EffectStrings returns the string elements of a set-valued effect. The
// loader has already validated the shape.
func EffectStrings(eff Effect) []string {
	out, _ := effectStrings(eff)
	return out
}

func buildSuggestions(raws []rawSuggestion) ([]SuggestionRule, error) {
	suggestions := make([]SuggestionRule, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	for i, s := range raws {
		loc := s.ID
		if loc == "" {
			return nil, schemaErrf("suggestion_rules", fmt.Sprintf("#%d", i), "missing id")
		}
		if seen[s.ID] {
			return nil, schemaErrf("suggestion_rules", loc, "duplicate suggestion id")
		}
		seen[s.ID] = true

		if s.Text == "" {
			return nil, schemaErrf("suggestion_rules", loc, "missing text")
		}
		if len(s.AppliesTo) == 0 {
			return nil, schemaErrf("suggestion_rules", loc, "applies_to is required (use \"all\" to match every fastener)")
		}

		suggestions = append(suggestions, SuggestionRule{
			ID:        s.ID,
			AppliesTo: s.AppliesTo,
			When:      s.When,
			Text:      s.Text,
		})
	}
	return suggestions, nil
}

func inStrings(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
