package kb

import "fmt"

// StrengthLevel is a level on the mechanical strength scale.
type StrengthLevel string

// Strength scale, weakest first.
const (
	StrengthNone     StrengthLevel = "none"
	StrengthVeryLow  StrengthLevel = "very_low"
	StrengthLow      StrengthLevel = "low"
	StrengthModerate StrengthLevel = "moderate"
	StrengthHigh     StrengthLevel = "high"
	StrengthVeryHigh StrengthLevel = "very_high"
)

// ResistanceLevel is a level on the environmental resistance scale.
type ResistanceLevel string

// Resistance scale, weakest first.
const (
	ResistanceNone      ResistanceLevel = "none"
	ResistancePoor      ResistanceLevel = "poor"
	ResistanceFair      ResistanceLevel = "fair"
	ResistanceGood      ResistanceLevel = "good"
	ResistanceExcellent ResistanceLevel = "excellent"
)

// strengthOrder and resistanceOrder fix the total order of each ordinal
// scale. Declaration order is the comparison order.
var (
	strengthOrder = []StrengthLevel{
		StrengthNone, StrengthVeryLow, StrengthLow,
		StrengthModerate, StrengthHigh, StrengthVeryHigh,
	}
	resistanceOrder = []ResistanceLevel{
		ResistanceNone, ResistancePoor, ResistanceFair,
		ResistanceGood, ResistanceExcellent,
	}
)

// Index returns the position of s on the strength scale, or -1 if s is not a
// declared level.
func (s StrengthLevel) Index() int {
	for i, lvl := range strengthOrder {
		if lvl == s {
			return i
		}
	}
	return -1
}

// AtLeast reports whether s is greater than or equal to min on the scale.
func (s StrengthLevel) AtLeast(min StrengthLevel) bool {
	return s.Index() >= min.Index()
}

// Index returns the position of r on the resistance scale, or -1 if r is not
// a declared level.
func (r ResistanceLevel) Index() int {
	for i, lvl := range resistanceOrder {
		if lvl == r {
			return i
		}
	}
	return -1
}

// AtLeast reports whether r is greater than or equal to min on the scale.
func (r ResistanceLevel) AtLeast(min ResistanceLevel) bool {
	return r.Index() >= min.Index()
}

// ParseStrength validates a raw strength value from a KB document.
func ParseStrength(raw string) (StrengthLevel, error) {
	s := StrengthLevel(raw)
	if s.Index() < 0 {
		return "", fmt.Errorf("unknown strength level %q", raw)
	}
	return s, nil
}

// ParseResistance validates a raw resistance value from a KB document.
func ParseResistance(raw string) (ResistanceLevel, error) {
	r := ResistanceLevel(raw)
	if r.Index() < 0 {
		return "", fmt.Errorf("unknown resistance level %q", raw)
	}
	return r, nil
}

// Rigidity classifies how rigid a fastening method is after installation.
type Rigidity string

const (
	RigidityFlexible     Rigidity = "flexible"
	RigiditySemiFlexible Rigidity = "semi_flexible"
	RigidityRigid        Rigidity = "rigid"
)

// Flexible reports whether the rigidity class satisfies a flexibility
// requirement (flexible or semi_flexible).
func (r Rigidity) Flexible() bool {
	return r == RigidityFlexible || r == RigiditySemiFlexible
}

// Permanence classifies whether a joint can be undone.
type Permanence string

const (
	PermanenceRemovable     Permanence = "removable"
	PermanenceSemiPermanent Permanence = "semi_permanent"
	PermanencePermanent     Permanence = "permanent"
)

// Category is the top-level class of a fastening method.
type Category string

const (
	CategoryAdhesive   Category = "adhesive"
	CategoryMechanical Category = "mechanical"
	CategoryThermal    Category = "thermal"
)

var (
	validRigidities  = map[Rigidity]bool{RigidityFlexible: true, RigiditySemiFlexible: true, RigidityRigid: true}
	validPermanences = map[Permanence]bool{PermanenceRemovable: true, PermanenceSemiPermanent: true, PermanencePermanent: true}
	validCategories  = map[Category]bool{CategoryAdhesive: true, CategoryMechanical: true, CategoryThermal: true}
)

// ParseRigidity validates a raw rigidity value from a KB document.
func ParseRigidity(raw string) (Rigidity, error) {
	r := Rigidity(raw)
	if !validRigidities[r] {
		return "", fmt.Errorf("unknown rigidity %q", raw)
	}
	return r, nil
}

// ParsePermanence validates a raw permanence value from a KB document.
func ParsePermanence(raw string) (Permanence, error) {
	p := Permanence(raw)
	if !validPermanences[p] {
		return "", fmt.Errorf("unknown permanence %q", raw)
	}
	return p, nil
}

// ParseCategory validates a raw category value from a KB document.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !validCategories[c] {
		return "", fmt.Errorf("unknown category %q", raw)
	}
	return c, nil
}
