// Package kb loads and validates the declarative knowledge base of the
// fastening advisor: questions, materials, fastener catalog, inference rules
// and suggestion rules. The package is a pure structural transform; no
// inference logic lives here. Entities are immutable once loaded.
package kb

// AnswerKind is the kind of answer a question accepts.
type AnswerKind string

const (
	// AnswerBoolean accepts yes/no answers.
	AnswerBoolean AnswerKind = "boolean"
	// AnswerChoice accepts a single value from an enumerated choice list.
	AnswerChoice AnswerKind = "choice"
)

// Question is one question the advisor can ask the user.
type Question struct {
	ID      string     `yaml:"id"`
	Text    string     `yaml:"text"`
	Kind    AnswerKind `yaml:"kind"`
	Choices []string   `yaml:"choices,omitempty"`

	// Fact is the attribute path the answer is written to.
	Fact string `yaml:"fact"`

	// AskIf gates the question on already-known facts. An empty condition
	// means the question is always applicable.
	AskIf Condition `yaml:"ask_if,omitempty"`

	// HelpsRules lists human-readable reasons why the question matters.
	HelpsRules []string `yaml:"helps_rules,omitempty"`
}

// Material describes intrinsic properties of a joinable material. Answering
// a material-type question also writes these properties into the fact store.
type Material struct {
	Type         string        `yaml:"type"`
	Porosity     string        `yaml:"porosity"`
	Brittleness  string        `yaml:"brittleness"`
	BaseStrength StrengthLevel `yaml:"base_strength"`
}

// Fastener is one candidate fastening or bonding method in the catalog.
type Fastener struct {
	Name     string   `yaml:"name"`
	Category Category `yaml:"category"`

	CompatibleMaterials []string `yaml:"compatible_materials"`

	TensileStrength StrengthLevel `yaml:"tensile_strength"`
	ShearStrength   StrengthLevel `yaml:"shear_strength"`

	WaterResistance       ResistanceLevel `yaml:"water_resistance"`
	TemperatureResistance ResistanceLevel `yaml:"temperature_resistance"`
	UVResistance          ResistanceLevel `yaml:"uv_resistance"`
	VibrationResistance   ResistanceLevel `yaml:"vibration_resistance"`
	ChemicalResistance    ResistanceLevel `yaml:"chemical_resistance"`

	Rigidity   Rigidity   `yaml:"rigidity"`
	Permanence Permanence `yaml:"permanence"`

	RequiresTwoSidedAccess bool `yaml:"requires_two_sided_access"`

	RequiresTools []string `yaml:"requires_tools,omitempty"`
	SurfacePrep   []string `yaml:"surface_prep,omitempty"`
	CuringTime    string   `yaml:"curing_time,omitempty"`
	Notes         []string `yaml:"notes,omitempty"`
}

// CompatibleWith reports whether the fastener can join the given material
// type.
func (f *Fastener) CompatibleWith(material string) bool {
	for _, m := range f.CompatibleMaterials {
		if m == material {
			return true
		}
	}
	return false
}

// TestOp is the comparison an atomic condition test performs.
type TestOp string

const (
	// OpEqual holds when the fact equals the expected value.
	OpEqual TestOp = "eq"
	// OpIn holds when the fact is a member of the expected value set.
	OpIn TestOp = "in"
	// OpNotEqual holds when the fact is present and differs from the value.
	OpNotEqual TestOp = "not_eq"
	// OpNotIn holds when the fact is present and outside the value set.
	OpNotIn TestOp = "not_in"
	// OpSameAs holds when two fact paths carry equal values.
	OpSameAs TestOp = "same_as"
)

// Test is one atomic condition over the fact store.
type Test struct {
	Path   string
	Op     TestOp
	Value  any    // OpEqual / OpNotEqual
	Values []any  // OpIn / OpNotIn
	Other  string // OpSameAs: the second fact path
}

// Condition is a conjunction of atomic tests. All tests must hold. There is
// no disjunction primitive; a rule needing OR semantics is split into
// multiple rules.
type Condition []Test

// Rule is one declarative IF-THEN inference rule. Conditions are evaluated
// against the fact store; effects merge monotonically into the derived
// requirements.
type Rule struct {
	ID       string
	Context  string
	Priority int
	When     Condition
	Effects  []Effect
}

// Effect is one write a rule performs on the derived requirements.
type Effect struct {
	Key   string
	Value any
}

// SuggestionRule attaches advisory text to matched fasteners.
type SuggestionRule struct {
	ID string

	// AppliesTo restricts which fasteners receive the suggestion: fastener
	// name substrings (case-insensitive), category names, or "all".
	AppliesTo []string

	// When must hold over the fact store for the suggestion to fire.
	When Condition

	Text string
}

// KnowledgeBase is the validated, read-only collection of all loaded
// entities. It may be shared across sessions.
type KnowledgeBase struct {
	Questions   []Question
	Materials   []Material
	Fasteners   []Fastener
	Rules       []Rule
	Suggestions []SuggestionRule

	questionByID   map[string]*Question
	materialByType map[string]*Material
	fastenerByName map[string]*Fastener
}

// Question returns the question with the given id, or nil.
func (k *KnowledgeBase) Question(id string) *Question {
	return k.questionByID[id]
}

// Material returns the material spec for the given type, or nil.
func (k *KnowledgeBase) Material(typ string) *Material {
	return k.materialByType[typ]
}

// Fastener returns the catalog entry with the given name, or nil.
func (k *KnowledgeBase) Fastener(name string) *Fastener {
	return k.fastenerByName[name]
}

func (k *KnowledgeBase) index() {
	k.questionByID = make(map[string]*Question, len(k.Questions))
	for i := range k.Questions {
		k.questionByID[k.Questions[i].ID] = &k.Questions[i]
	}
	k.materialByType = make(map[string]*Material, len(k.Materials))
	for i := range k.Materials {
		k.materialByType[k.Materials[i].Type] = &k.Materials[i]
	}
	k.fastenerByName = make(map[string]*Fastener, len(k.Fasteners))
	for i := range k.Fasteners {
		k.fastenerByName[k.Fasteners[i].Name] = &k.Fasteners[i]
	}
}
