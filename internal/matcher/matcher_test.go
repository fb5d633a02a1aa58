package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JasperK04/KTP/internal/facts"
	"github.com/JasperK04/KTP/internal/kb"
)

func loadKB(t *testing.T) *kb.KnowledgeBase {
	t.Helper()
	k, err := kb.LoadDefault()
	require.NoError(t, err)
	return k
}

func names(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Fastener.Name
	}
	return out
}

func TestMatchEmptyStateReturnsWholeCatalog(t *testing.T) {
	k := loadKB(t)
	recs := Match(k, facts.NewStore(), facts.NewRequirements())
	assert.Len(t, recs, len(k.Fasteners),
		"with no facts and no requirements every fastener qualifies")
}

func TestMatchKeepsCatalogOrder(t *testing.T) {
	k := loadKB(t)
	recs := Match(k, facts.NewStore(), facts.NewRequirements())

	want := make([]string, len(k.Fasteners))
	for i := range k.Fasteners {
		want[i] = k.Fasteners[i].Name
	}
	assert.Equal(t, want, names(recs))
}

func TestCategoryGate(t *testing.T) {
	k := loadKB(t)
	st := facts.NewStore()
	req := facts.NewRequirements()
	req.Apply(kb.Effect{Key: kb.EffectAllowedCategories, Value: []any{"adhesive"}})

	for _, r := range Match(k, st, req) {
		assert.Equal(t, kb.CategoryAdhesive, r.Fastener.Category)
	}

	req.Apply(kb.Effect{Key: kb.EffectExcludedCategories, Value: []any{"adhesive"}})
	assert.Empty(t, Match(k, st, req), "excluding the only allowed category leaves nothing")
}

func TestItemExclusionGate(t *testing.T) {
	k := loadKB(t)
	st := facts.NewStore()
	req := facts.NewRequirements()
	req.Apply(kb.Effect{Key: kb.EffectExcludedItems, Value: []any{"Common nail"}})

	assert.NotContains(t, names(Match(k, st, req)), "Common nail")
}

func TestOrdinalGates(t *testing.T) {
	k := loadKB(t)
	st := facts.NewStore()
	req := facts.NewRequirements()
	req.Apply(kb.Effect{Key: kb.EffectMinWaterResistance, Value: "excellent"})

	recs := Match(k, st, req)
	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.True(t, r.Fastener.WaterResistance.AtLeast(kb.ResistanceExcellent),
			"%s leaks below the water resistance floor", r.Fastener.Name)
	}
	assert.NotContains(t, names(recs), "Wood glue (PVA)")
}

func TestMaterialCompatibilityGate(t *testing.T) {
	k := loadKB(t)
	req := facts.NewRequirements()

	t.Run("both materials must be compatible", func(t *testing.T) {
		st := facts.NewStore()
		st.Set(kb.FactMaterialA, "wood")
		st.Set(kb.FactMaterialB, "metal")

		got := names(Match(k, st, req))
		assert.NotContains(t, got, "Wood screw", "wood-only fastener cannot join metal")
		assert.Contains(t, got, "Two-component epoxy")
	})

	t.Run("a single stated material constrains alone", func(t *testing.T) {
		st := facts.NewStore()
		st.Set(kb.FactMaterialA, "glass")

		for _, r := range Match(k, st, req) {
			assert.True(t, r.Fastener.CompatibleWith("glass"),
				"%s is not rated for glass", r.Fastener.Name)
		}
	})
}

func TestPermanenceGate(t *testing.T) {
	k := loadKB(t)
	req := facts.NewRequirements()

	t.Run("removable requires exact match", func(t *testing.T) {
		st := facts.NewStore()
		st.Set(kb.FactPermanence, "removable")
		for _, r := range Match(k, st, req) {
			assert.Equal(t, kb.PermanenceRemovable, r.Fastener.Permanence)
		}
	})

	t.Run("semi_permanent accepts every class", func(t *testing.T) {
		st := facts.NewStore()
		st.Set(kb.FactPermanence, "semi_permanent")
		classes := make(map[kb.Permanence]bool)
		for _, r := range Match(k, st, req) {
			classes[r.Fastener.Permanence] = true
		}
		assert.True(t, classes[kb.PermanenceRemovable])
		assert.True(t, classes[kb.PermanencePermanent])
	})
}

func TestFlexibilityGate(t *testing.T) {
	k := loadKB(t)
	st := facts.NewStore()
	req := facts.NewRequirements()
	req.Apply(kb.Effect{Key: kb.EffectRequireFlexibility, Value: true})

	recs := Match(k, st, req)
	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.True(t, r.Fastener.Rigidity.Flexible(),
			"%s is rigid but flexibility is required", r.Fastener.Name)
	}
}

func TestOneSideAccessGate(t *testing.T) {
	k := loadKB(t)
	req := facts.NewRequirements()

	st := facts.NewStore()
	st.Set(kb.FactOneSideAccessible, true)
	assert.NotContains(t, names(Match(k, st, req)), "Hex bolt",
		"bolts need access to both sides")

	st = facts.NewStore()
	st.Set(kb.FactOneSideAccessible, false)
	assert.Contains(t, names(Match(k, st, req)), "Hex bolt")
}

func TestSuggestions(t *testing.T) {
	k := loadKB(t)
	req := facts.NewRequirements()

	t.Run("name substring with holding condition", func(t *testing.T) {
		st := facts.NewStore()
		st.Set(kb.FactMaterialA, "wood")
		st.Set(kb.FactMaterialB, "wood")

		var suggestions []string
		found := false
		for _, r := range Match(k, st, req) {
			if r.Fastener.Name == "Wood screw" {
				suggestions = r.Suggestions
				found = true
				break
			}
		}
		require.True(t, found)
		assert.Contains(t, suggestions, "Drill pilot holes to keep the wood from splitting.")
	})

	t.Run("condition must hold", func(t *testing.T) {
		st := facts.NewStore() // no wood stated
		for _, r := range Match(k, st, req) {
			assert.NotContains(t, r.Suggestions, "Drill pilot holes to keep the wood from splitting.")
		}
	})

	t.Run("category pattern", func(t *testing.T) {
		st := facts.NewStore()
		st.Set("environment.moisture", "outdoor")
		for _, r := range Match(k, st, req) {
			if r.Fastener.Category == kb.CategoryMechanical {
				assert.Contains(t, r.Suggestions,
					"Use galvanized or stainless hardware to prevent corrosion.")
			}
		}
	})

	t.Run("unconditional suggestion always attaches", func(t *testing.T) {
		st := facts.NewStore()
		for _, r := range Match(k, st, req) {
			if r.Fastener.Name == "Metal welding" {
				assert.Contains(t, r.Suggestions,
					"Structural welds should be made or inspected by a certified welder.")
			}
		}
	})
}
