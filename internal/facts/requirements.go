package facts

import (
	"fmt"
	"sort"

	"github.com/JasperK04/KTP/internal/kb"
)

// Requirements accumulates the constraints derived by rule effects during a
// session. All updates are monotonic: ordinal floors only rise, allowed sets
// only shrink, excluded sets only grow, boolean flags only switch on. A rule
// can therefore never relax a constraint another rule established.
type Requirements struct {
	minTensileStrength kb.StrengthLevel
	minShearStrength   kb.StrengthLevel

	minWaterResistance     kb.ResistanceLevel
	minTempResistance      kb.ResistanceLevel
	minUVResistance        kb.ResistanceLevel
	minVibrationResistance kb.ResistanceLevel
	minChemicalResistance  kb.ResistanceLevel

	allowedCategories  map[kb.Category]bool // nil until a rule establishes it
	excludedCategories map[kb.Category]bool
	excludedItems      map[string]bool
	allowedRigidities  map[kb.Rigidity]bool // nil until a rule establishes it

	requireFlexibility bool
}

// NewRequirements returns requirements with every floor at the bottom of its
// scale and no set constraints established.
func NewRequirements() *Requirements {
	return &Requirements{
		minTensileStrength:     kb.StrengthNone,
		minShearStrength:       kb.StrengthNone,
		minWaterResistance:     kb.ResistanceNone,
		minTempResistance:      kb.ResistanceNone,
		minUVResistance:        kb.ResistanceNone,
		minVibrationResistance: kb.ResistanceNone,
		minChemicalResistance:  kb.ResistanceNone,
		excludedCategories:     make(map[kb.Category]bool),
		excludedItems:          make(map[string]bool),
	}
}

// Apply merges one rule effect into the requirements, returning a description
// of each change actually made. An effect that would weaken an existing
// constraint is a no-op and contributes no description.
func (r *Requirements) Apply(eff kb.Effect) []string {
	switch {
	case kb.StrengthEffect(eff.Key):
		lvl, err := kb.ParseStrength(eff.Value.(string))
		if err != nil {
			return nil
		}
		return r.raiseStrength(eff.Key, lvl)

	case kb.ResistanceEffect(eff.Key):
		lvl, err := kb.ParseResistance(eff.Value.(string))
		if err != nil {
			return nil
		}
		return r.raiseResistance(eff.Key, lvl)

	case eff.Key == kb.EffectAllowedCategories:
		return r.allowCategories(kb.EffectStrings(eff))

	case eff.Key == kb.EffectExcludedCategories:
		return r.excludeCategories(kb.EffectStrings(eff))

	case eff.Key == kb.EffectExcludedItems:
		return r.excludeItems(kb.EffectStrings(eff))

	case eff.Key == kb.EffectAllowedRigidities:
		return r.allowRigidities(kb.EffectStrings(eff))

	case eff.Key == kb.EffectRequireFlexibility:
		want, _ := eff.Value.(bool)
		if want && !r.requireFlexibility {
			r.requireFlexibility = true
			return []string{"require_flexibility: true"}
		}
		return nil
	}
	return nil
}

// raiseStrength lifts a strength floor; a lower or equal level is kept out.
func (r *Requirements) raiseStrength(key string, lvl kb.StrengthLevel) []string {
	target := map[string]*kb.StrengthLevel{
		kb.EffectMinTensileStrength: &r.minTensileStrength,
		kb.EffectMinShearStrength:   &r.minShearStrength,
	}[key]
	if target == nil || lvl.Index() <= target.Index() {
		return nil
	}
	change := fmt.Sprintf("%s: %s -> %s", key, *target, lvl)
	*target = lvl
	return []string{change}
}

func (r *Requirements) raiseResistance(key string, lvl kb.ResistanceLevel) []string {
	target := map[string]*kb.ResistanceLevel{
		kb.EffectMinWaterResistance:     &r.minWaterResistance,
		kb.EffectMinTempResistance:      &r.minTempResistance,
		kb.EffectMinUVResistance:        &r.minUVResistance,
		kb.EffectMinVibrationResistance: &r.minVibrationResistance,
		kb.EffectMinChemicalResistance:  &r.minChemicalResistance,
	}[key]
	if target == nil || lvl.Index() <= target.Index() {
		return nil
	}
	change := fmt.Sprintf("%s: %s -> %s", key, *target, lvl)
	*target = lvl
	return []string{change}
}

// allowCategories intersects with an established allowed set, or establishes
// one. The set can only shrink.
func (r *Requirements) allowCategories(names []string) []string {
	incoming := make(map[kb.Category]bool, len(names))
	for _, n := range names {
		incoming[kb.Category(n)] = true
	}

	if r.allowedCategories == nil {
		r.allowedCategories = incoming
		return []string{fmt.Sprintf("allowed_categories: %v", sortedCategories(incoming))}
	}

	changed := false
	for c := range r.allowedCategories {
		if !incoming[c] {
			delete(r.allowedCategories, c)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return []string{fmt.Sprintf("allowed_categories: %v", sortedCategories(r.allowedCategories))}
}

func (r *Requirements) excludeCategories(names []string) []string {
	var changes []string
	for _, n := range names {
		c := kb.Category(n)
		if !r.excludedCategories[c] {
			r.excludedCategories[c] = true
			changes = append(changes, fmt.Sprintf("excluded_categories: +%s", c))
		}
	}
	return changes
}

func (r *Requirements) excludeItems(names []string) []string {
	var changes []string
	for _, n := range names {
		if !r.excludedItems[n] {
			r.excludedItems[n] = true
			changes = append(changes, fmt.Sprintf("excluded_items: +%s", n))
		}
	}
	return changes
}

func (r *Requirements) allowRigidities(names []string) []string {
	incoming := make(map[kb.Rigidity]bool, len(names))
	for _, n := range names {
		incoming[kb.Rigidity(n)] = true
	}

	if r.allowedRigidities == nil {
		r.allowedRigidities = incoming
		return []string{fmt.Sprintf("allowed_rigidities: %v", sortedRigidities(incoming))}
	}

	changed := false
	for rig := range r.allowedRigidities {
		if !incoming[rig] {
			delete(r.allowedRigidities, rig)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return []string{fmt.Sprintf("allowed_rigidities: %v", sortedRigidities(r.allowedRigidities))}
}

// MinTensileStrength returns the current tensile strength floor.
func (r *Requirements) MinTensileStrength() kb.StrengthLevel { return r.minTensileStrength }

// MinShearStrength returns the current shear strength floor.
func (r *Requirements) MinShearStrength() kb.StrengthLevel { return r.minShearStrength }

// MinWaterResistance returns the current water resistance floor.
func (r *Requirements) MinWaterResistance() kb.ResistanceLevel { return r.minWaterResistance }

// MinTemperatureResistance returns the current temperature resistance floor.
func (r *Requirements) MinTemperatureResistance() kb.ResistanceLevel { return r.minTempResistance }

// MinUVResistance returns the current UV resistance floor.
func (r *Requirements) MinUVResistance() kb.ResistanceLevel { return r.minUVResistance }

// MinVibrationResistance returns the current vibration resistance floor.
func (r *Requirements) MinVibrationResistance() kb.ResistanceLevel { return r.minVibrationResistance }

// MinChemicalResistance returns the current chemical resistance floor.
func (r *Requirements) MinChemicalResistance() kb.ResistanceLevel { return r.minChemicalResistance }

// CategoryAllowed reports whether a fastener category passes the category
// gate: inside the allowed set when one is established, and never inside the
// excluded set.
func (r *Requirements) CategoryAllowed(c kb.Category) bool {
	if r.excludedCategories[c] {
		return false
	}
	if r.allowedCategories != nil && !r.allowedCategories[c] {
		return false
	}
	return true
}

// ItemExcluded reports whether a fastener was excluded by name.
func (r *Requirements) ItemExcluded(name string) bool {
	return r.excludedItems[name]
}

// RigidityAllowed reports whether a rigidity class passes the allowed set
// (always true when no set is established).
func (r *Requirements) RigidityAllowed(rig kb.Rigidity) bool {
	return r.allowedRigidities == nil || r.allowedRigidities[rig]
}

// FlexibilityRequired reports whether a rule demanded a flexible joint.
func (r *Requirements) FlexibilityRequired() bool {
	return r.requireFlexibility
}

// Snapshot is a read-only view of the derived requirements, for display and
// serialization. AllowedCategories and AllowedRigidities are nil when no rule
// has established them.
type Snapshot struct {
	MinTensileStrength kb.StrengthLevel `yaml:"min_tensile_strength"`
	MinShearStrength   kb.StrengthLevel `yaml:"min_shear_strength"`

	MinWaterResistance       kb.ResistanceLevel `yaml:"min_water_resistance"`
	MinTemperatureResistance kb.ResistanceLevel `yaml:"min_temperature_resistance"`
	MinUVResistance          kb.ResistanceLevel `yaml:"min_uv_resistance"`
	MinVibrationResistance   kb.ResistanceLevel `yaml:"min_vibration_resistance"`
	MinChemicalResistance    kb.ResistanceLevel `yaml:"min_chemical_resistance"`

	AllowedCategories  []kb.Category `yaml:"allowed_categories,omitempty"`
	ExcludedCategories []kb.Category `yaml:"excluded_categories"`
	ExcludedItems      []string      `yaml:"excluded_items"`
	AllowedRigidities  []kb.Rigidity `yaml:"allowed_rigidities,omitempty"`

	RequireFlexibility bool `yaml:"require_flexibility"`
}

// Snapshot captures the current requirements state.
func (r *Requirements) Snapshot() Snapshot {
	snap := Snapshot{
		MinTensileStrength:       r.minTensileStrength,
		MinShearStrength:         r.minShearStrength,
		MinWaterResistance:       r.minWaterResistance,
		MinTemperatureResistance: r.minTempResistance,
		MinUVResistance:          r.minUVResistance,
		MinVibrationResistance:   r.minVibrationResistance,
		MinChemicalResistance:    r.minChemicalResistance,
		ExcludedCategories:       sortedCategories(r.excludedCategories),
		ExcludedItems:            sortedStrings(r.excludedItems),
		RequireFlexibility:       r.requireFlexibility,
	}
	if r.allowedCategories != nil {
		snap.AllowedCategories = sortedCategories(r.allowedCategories)
	}
	if r.allowedRigidities != nil {
		snap.AllowedRigidities = sortedRigidities(r.allowedRigidities)
	}
	return snap
}

func sortedCategories(set map[kb.Category]bool) []kb.Category {
	out := make([]kb.Category, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedRigidities(set map[kb.Rigidity]bool) []kb.Rigidity {
	out := make([]kb.Rigidity, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedStrings(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
