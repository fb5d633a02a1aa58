package kb

// The fact schema is the closed set of attribute paths the engine knows
// about. Dotted paths written by answers and read by rule conditions must
// resolve to one of these entries; Lint reports anything else before a
// session ever runs.

// FactType classifies the value domain of a fact attribute.
type FactType int

const (
	// FactBool holds true/false.
	FactBool FactType = iota
	// FactEnum holds one value from a fixed nominal set.
	FactEnum
	// FactStrength holds a level on the strength scale.
	FactStrength
	// FactMaterial holds a material type declared in the KB.
	FactMaterial
)

// FactDef declares the type and, for enums, the value domain of one fact
// attribute path.
type FactDef struct {
	Type FactType
	Enum []string
}

// Well-known fact paths consumed outside the rule evaluator.
const (
	FactMaterialA = "materials.a.type"
	FactMaterialB = "materials.b.type"

	FactPermanence          = "constraints.permanence"
	FactFlexibilityRequired = "constraints.flexibility_required"
	FactOneSideAccessible   = "constraints.one_side_accessible"
)

var moistureDomain = []string{"none", "splash", "outdoor", "submerged"}

// factSchema maps every known attribute path to its declared domain.
var factSchema = map[string]FactDef{
	FactMaterialA:               {Type: FactMaterial},
	FactMaterialB:               {Type: FactMaterial},
	"materials.a.porosity":      {Type: FactEnum, Enum: []string{"none", "low", "medium", "high"}},
	"materials.b.porosity":      {Type: FactEnum, Enum: []string{"none", "low", "medium", "high"}},
	"materials.a.brittleness":   {Type: FactEnum, Enum: []string{"none", "low", "medium", "high"}},
	"materials.b.brittleness":   {Type: FactEnum, Enum: []string{"none", "low", "medium", "high"}},
	"materials.a.base_strength": {Type: FactStrength},
	"materials.b.base_strength": {Type: FactStrength},

	"environment.moisture":             {Type: FactEnum, Enum: moistureDomain},
	"environment.uv_exposure":          {Type: FactBool},
	"environment.temperature_extremes": {Type: FactBool},
	"environment.chemical_exposure":    {Type: FactBool},

	"load.type":        {Type: FactEnum, Enum: []string{"static", "light_dynamic", "heavy_dynamic"}},
	"load.vibration":   {Type: FactBool},
	"load.shock_loads": {Type: FactBool},

	FactPermanence:                   {Type: FactEnum, Enum: []string{"removable", "semi_permanent", "permanent"}},
	FactFlexibilityRequired:          {Type: FactBool},
	FactOneSideAccessible:            {Type: FactBool},
	"constraints.max_curing_time":    {Type: FactEnum, Enum: []string{"immediate", "fast", "slow", "any"}},
	"constraints.health_constraints": {Type: FactBool},
}

// FactDefFor returns the schema entry for an attribute path.
func FactDefFor(path string) (FactDef, bool) {
	def, ok := factSchema[path]
	return def, ok
}

// Effect keys a rule may write. Each key has fixed merge semantics in the
// derived requirements (ordinal floor, set intersect, set union, or boolean
// OR).
const (
	EffectMinTensileStrength     = "min_tensile_strength"
	EffectMinShearStrength       = "min_shear_strength"
	EffectMinWaterResistance     = "min_water_resistance"
	EffectMinTempResistance      = "min_temperature_resistance"
	EffectMinUVResistance        = "min_uv_resistance"
	EffectMinVibrationResistance = "min_vibration_resistance"
	EffectMinChemicalResistance  = "min_chemical_resistance"
	EffectAllowedCategories      = "allowed_categories"
	EffectExcludedCategories     = "excluded_categories"
	EffectExcludedItems          = "excluded_items"
	EffectAllowedRigidities      = "allowed_rigidities"
	EffectRequireFlexibility     = "require_flexibility"
)

// strengthEffects and resistanceEffects partition the ordinal effect keys by
// scale.
var (
	strengthEffects = map[string]bool{
		EffectMinTensileStrength: true,
		EffectMinShearStrength:   true,
	}
	resistanceEffects = map[string]bool{
		EffectMinWaterResistance:     true,
		EffectMinTempResistance:      true,
		EffectMinUVResistance:        true,
		EffectMinVibrationResistance: true,
		EffectMinChemicalResistance:  true,
	}
)

// StrengthEffect reports whether key raises a strength floor.
func StrengthEffect(key string) bool { return strengthEffects[key] }

// ResistanceEffect reports whether key raises a resistance floor.
func ResistanceEffect(key string) bool { return resistanceEffects[key] }

// KnownEffect reports whether key is a declared effect key.
func KnownEffect(key string) bool {
	if strengthEffects[key] || resistanceEffects[key] {
		return true
	}
	switch key {
	case EffectAllowedCategories, EffectExcludedCategories, EffectExcludedItems,
		EffectAllowedRigidities, EffectRequireFlexibility:
		return true
	}
	return false
}
