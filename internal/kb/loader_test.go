package kb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalKB is a small but complete document used as the baseline for loader
// tests. Individual tests append or replace sections.
const minimalKB = `
materials:
  - type: wood
    porosity: high
    brittleness: low
    base_strength: moderate
  - type: metal
    porosity: none
    brittleness: low
    base_strength: very_high

questions:
  - id: material_a_type
    text: "First material?"
    kind: choice
    fact: materials.a.type
    choices: [wood, metal]
  - id: vibration
    text: "Vibration?"
    kind: boolean
    fact: load.vibration

fasteners:
  - name: "Wood screw"
    category: mechanical
    compatible_materials: [wood]
    tensile_strength: high
    shear_strength: high
    water_resistance: fair
    temperature_resistance: good
    uv_resistance: excellent
    vibration_resistance: good
    chemical_resistance: good
    rigidity: rigid
    permanence: removable

suggestion_rules:
  - id: pilot_holes
    applies_to: [screw]
    text: "Drill pilot holes."

rules:
  - id: vibration_present
    priority: 55
    when:
      load.vibration: true
    effect:
      min_vibration_resistance: good
`

func TestParseMinimalKB(t *testing.T) {
	k, err := Parse([]byte(minimalKB))
	require.NoError(t, err)

	assert.Len(t, k.Materials, 2)
	assert.Len(t, k.Questions, 2)
	assert.Len(t, k.Fasteners, 1)
	assert.Len(t, k.Rules, 1)
	assert.Len(t, k.Suggestions, 1)

	require.NotNil(t, k.Question("vibration"))
	assert.Equal(t, AnswerBoolean, k.Question("vibration").Kind)
	require.NotNil(t, k.Material("wood"))
	assert.Equal(t, StrengthModerate, k.Material("wood").BaseStrength)
	require.NotNil(t, k.Fastener("Wood screw"))
	assert.Nil(t, k.Fastener("Duct tape"))

	rule := k.Rules[0]
	assert.Equal(t, 55, rule.Priority)
	require.Len(t, rule.Effects, 1)
	assert.Equal(t, EffectMinVibrationResistance, rule.Effects[0].Key)
	assert.Equal(t, "good", rule.Effects[0].Value)
}

func TestParseEffectOrderPreserved(t *testing.T) {
	doc := minimalKB + `
  - id: outdoor
    priority: 50
    when:
      load.vibration: true
    effect:
      min_water_resistance: good
      min_uv_resistance: fair
      excluded_categories: [adhesive]
`
	k, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, k.Rules, 2)

	keys := make([]string, 0, 3)
	for _, eff := range k.Rules[1].Effects {
		keys = append(keys, eff.Key)
	}
	assert.Equal(t, []string{
		EffectMinWaterResistance,
		EffectMinUVResistance,
		EffectExcludedCategories,
	}, keys)
}

func TestParseSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  string // appended to minimalKB
		section string
	}{
		{
			name: "duplicate rule id",
			mutate: `
  - id: vibration_present
    priority: 1
    when:
      load.vibration: true
    effect:
      min_shear_strength: low
`,
			section: "rules",
		},
		{
			name: "unknown effect key",
			mutate: `
  - id: bad_effect
    priority: 1
    when:
      load.vibration: true
    effect:
      maximum_cost: low
`,
			section: "rules",
		},
		{
			name: "effect value outside scale",
			mutate: `
  - id: bad_level
    priority: 1
    when:
      load.vibration: true
    effect:
      min_tensile_strength: enormous
`,
			section: "rules",
		},
		{
			name: "effect category outside domain",
			mutate: `
  - id: bad_category
    priority: 1
    when:
      load.vibration: true
    effect:
      excluded_categories: [magnetic]
`,
			section: "rules",
		},
		{
			name: "rule without condition",
			mutate: `
  - id: unconditional
    priority: 1
    effect:
      min_shear_strength: low
`,
			section: "rules",
		},
		{
			name: "rule without effect",
			mutate: `
  - id: no_effect
    priority: 1
    when:
      load.vibration: true
`,
			section: "rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(minimalKB + tt.mutate))
			require.Error(t, err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.section, schemaErr.Section)
		})
	}
}

func TestParseQuestionValidation(t *testing.T) {
	base := `
materials:
  - type: wood
    porosity: high
    brittleness: low
    base_strength: moderate

fasteners:
  - name: "Wood screw"
    category: mechanical
    compatible_materials: [wood]
    tensile_strength: high
    shear_strength: high
    water_resistance: fair
    temperature_resistance: good
    uv_resistance: excellent
    vibration_resistance: good
    chemical_resistance: good
    rigidity: rigid
    permanence: removable

questions:
`
	tests := []struct {
		name     string
		question string
	}{
		{
			name: "fact path outside schema",
			question: `
  - id: q
    text: "?"
    kind: boolean
    fact: budget.max_cost
`,
		},
		{
			name: "choice outside enum domain",
			question: `
  - id: q
    text: "?"
    kind: choice
    fact: environment.moisture
    choices: [none, drizzle]
`,
		},
		{
			name: "choice not a declared material",
			question: `
  - id: q
    text: "?"
    kind: choice
    fact: materials.a.type
    choices: [wood, concrete]
`,
		},
		{
			name: "boolean question with choices",
			question: `
  - id: q
    text: "?"
    kind: boolean
    fact: load.vibration
    choices: [yes, no]
`,
		},
		{
			name: "boolean question on enum fact",
			question: `
  - id: q
    text: "?"
    kind: boolean
    fact: environment.moisture
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(base + tt.question))
			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, "questions", schemaErr.Section)
			assert.Equal(t, "q", schemaErr.Location)
		})
	}
}

func TestParseFastenerValidation(t *testing.T) {
	base := `
materials:
  - type: wood
    porosity: high
    brittleness: low
    base_strength: moderate

questions:
  - id: vibration
    text: "?"
    kind: boolean
    fact: load.vibration

fasteners:
`
	tests := []struct {
		name     string
		fastener string
	}{
		{
			name: "undeclared compatible material",
			fastener: `
  - name: "Concrete anchor"
    category: mechanical
    compatible_materials: [concrete]
    tensile_strength: high
    shear_strength: high
    water_resistance: fair
    temperature_resistance: good
    uv_resistance: excellent
    vibration_resistance: good
    chemical_resistance: good
    rigidity: rigid
    permanence: removable
`,
		},
		{
			name: "invalid resistance level",
			fastener: `
  - name: "Wood screw"
    category: mechanical
    compatible_materials: [wood]
    tensile_strength: high
    shear_strength: high
    water_resistance: waterproof
    temperature_resistance: good
    uv_resistance: excellent
    vibration_resistance: good
    chemical_resistance: good
    rigidity: rigid
    permanence: removable
`,
		},
		{
			name: "invalid rigidity",
			fastener: `
  - name: "Wood screw"
    category: mechanical
    compatible_materials: [wood]
    tensile_strength: high
    shear_strength: high
    water_resistance: fair
    temperature_resistance: good
    uv_resistance: excellent
    vibration_resistance: good
    chemical_resistance: good
    rigidity: stiff
    permanence: removable
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(base + tt.fastener))
			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, "fasteners", schemaErr.Section)
		})
	}
}

func TestParseMaterialValidation(t *testing.T) {
	t.Run("duplicate material type", func(t *testing.T) {
		doc := `
materials:
  - type: wood
    porosity: high
    brittleness: low
    base_strength: moderate
  - type: wood
    porosity: low
    brittleness: low
    base_strength: high
`
		_, err := Parse([]byte(doc))
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "materials", schemaErr.Section)
		assert.Equal(t, "wood", schemaErr.Location)
	})

	t.Run("invalid base strength", func(t *testing.T) {
		doc := `
materials:
  - type: wood
    porosity: high
    brittleness: low
    base_strength: enormous
`
		_, err := Parse([]byte(doc))
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "materials", schemaErr.Section)
	})
}

func TestParseSuggestionValidation(t *testing.T) {
	t.Run("applies_to is required", func(t *testing.T) {
		doc := `
materials:
  - type: wood
    porosity: high
    brittleness: low
    base_strength: moderate

questions:
  - id: vibration
    text: "?"
    kind: boolean
    fact: load.vibration

fasteners:
  - name: "Wood screw"
    category: mechanical
    compatible_materials: [wood]
    tensile_strength: high
    shear_strength: high
    water_resistance: fair
    temperature_resistance: good
    uv_resistance: excellent
    vibration_resistance: good
    chemical_resistance: good
    rigidity: rigid
    permanence: removable

suggestion_rules:
  - id: orphan
    text: "No target."
`
		_, err := Parse([]byte(doc))
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "suggestion_rules", schemaErr.Section)
		assert.Equal(t, "orphan", schemaErr.Location)
	})
}
