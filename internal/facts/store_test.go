package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreSetGet(t *testing.T) {
	st := NewStore()
	assert.Equal(t, 0, st.Len())

	st.Set("environment.moisture", "outdoor")
	st.Set("load.vibration", true)

	v, ok := st.Get("environment.moisture")
	assert.True(t, ok)
	assert.Equal(t, "outdoor", v)

	_, ok = st.Get("environment.uv_exposure")
	assert.False(t, ok)

	assert.Equal(t, 2, st.Len())
	assert.True(t, st.Has("load.vibration"))
	assert.False(t, st.Has("load.type"))
}

func TestStoreTypedAccessors(t *testing.T) {
	st := NewStore()
	st.Set("load.vibration", true)
	st.Set("environment.moisture", "splash")

	assert.True(t, st.Bool("load.vibration"))
	assert.False(t, st.Bool("load.shock_loads"), "unset reads as false")
	assert.False(t, st.Bool("environment.moisture"), "non-boolean reads as false")

	assert.Equal(t, "splash", st.String("environment.moisture"))
	assert.Equal(t, "", st.String("materials.a.type"), "unset reads as empty")

	assert.Equal(t, "none", st.GetDefault("constraints.permanence", "none"))
}

func TestStoreOverwrite(t *testing.T) {
	st := NewStore()
	st.Set("environment.moisture", "none")
	st.Set("environment.moisture", "submerged")
	assert.Equal(t, "submerged", st.String("environment.moisture"))
	assert.Equal(t, 1, st.Len())
}

func TestStorePathsSorted(t *testing.T) {
	st := NewStore()
	st.Set("load.type", "static")
	st.Set("environment.moisture", "none")
	st.Set("materials.a.type", "wood")

	assert.Equal(t, []string{"environment.moisture", "load.type", "materials.a.type"}, st.Paths())
}

func TestStoreCloneIsIndependent(t *testing.T) {
	st := NewStore()
	st.Set("load.type", "static")

	clone := st.Clone()
	clone.Set("load.type", "heavy_dynamic")
	clone.Set("load.vibration", true)

	assert.Equal(t, "static", st.String("load.type"))
	assert.False(t, st.Has("load.vibration"))
}

func TestStoreSnapshot(t *testing.T) {
	st := NewStore()
	st.Set("load.type", "static")

	snap := st.Snapshot()
	assert.Equal(t, map[string]any{"load.type": "static"}, snap)

	// Mutating the snapshot must not touch the store.
	snap["load.type"] = "heavy_dynamic"
	assert.Equal(t, "static", st.String("load.type"))
}
