package intake

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMovesSymptom(t *testing.T) {
	p := NewSymptomPool(testCatalog())

	p.Select("Fever")
	assert.Len(t, p.Selected(), 1)
	assert.Len(t, p.Available(), 2)
	assert.Equal(t, "Fever", p.Selected()[0].Name)
	for _, s := range p.Available() {
		assert.NotEqual(t, "Fever", s.Name)
	}
}

func TestSelectIdempotent(t *testing.T) {
	p := NewSymptomPool(testCatalog())

	p.Select("Fever")
	p.Select("Fever")

	require.Len(t, p.Selected(), 1)
	assert.Equal(t, "Fever", p.Selected()[0].Name)
	assert.Len(t, p.Available(), 2)
}

func TestRemoveMovesBack(t *testing.T) {
	p := NewSymptomPool(testCatalog())

	p.Select("Fever")
	p.Remove("Fever")
	assert.Empty(t, p.Selected())
	assert.Len(t, p.Available(), 3)

	// Removing something not selected is a no-op.
	p.Remove("Fever")
	p.Remove("not in the catalog")
	assert.Empty(t, p.Selected())
	assert.Len(t, p.Available(), 3)
}

func TestSelectUnknownIsNoOp(t *testing.T) {
	p := NewSymptomPool(testCatalog())
	p.Select("not in the catalog")
	assert.Empty(t, p.Selected())
	assert.Len(t, p.Available(), 3)
}

func TestConservationUnderRandomOperations(t *testing.T) {
	catalog := testCatalog()
	p := NewSymptomPool(catalog)
	rng := rand.New(rand.NewSource(1))

	names := make([]string, len(catalog))
	for i, s := range catalog {
		names[i] = s.Name
	}

	for i := 0; i < 500; i++ {
		name := names[rng.Intn(len(names))]
		if rng.Intn(2) == 0 {
			p.Select(name)
		} else {
			p.Remove(name)
		}

		require.Equal(t, len(catalog), p.Size(), "op %d", i)

		// No symptom in both or neither collection.
		seen := map[string]int{}
		for _, s := range p.Available() {
			seen[s.Name]++
		}
		for _, s := range p.Selected() {
			seen[s.Name]++
		}
		for _, n := range names {
			require.Equal(t, 1, seen[n], "op %d symptom %s", i, n)
		}
	}
}

func TestResetSelection(t *testing.T) {
	p := NewSymptomPool(testCatalog())
	p.Select("Fever")
	p.Select("Chest Pain")

	p.ResetSelection()
	assert.Empty(t, p.Selected())
	assert.Len(t, p.Available(), 3)
}

func TestPoolCopiesCatalog(t *testing.T) {
	catalog := testCatalog()
	p := NewSymptomPool(catalog)
	catalog[0].Name = "mutated"
	assert.NotEqual(t, "mutated", p.Available()[0].Name)
}

func TestEmptyPool(t *testing.T) {
	p := NewSymptomPool(nil)
	p.Select("anything")
	p.Remove("anything")
	assert.Zero(t, p.Size())
}
