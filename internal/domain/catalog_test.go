package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.NotEmpty(t, catalog)

	seen := make(map[string]bool)
	for _, a := range catalog {
		assert.False(t, seen[a.ID], "duplicate assembly id %s", a.ID)
		seen[a.ID] = true

		assert.NotEmpty(t, a.Components, "%s has no components", a.ID)
		assert.Positive(t, a.MinLeadTimeDays, "%s lead time", a.ID)
		assert.Positive(t, a.MinWorkWindowHours, "%s work window", a.ID)

		for _, c := range a.Components {
			if c.Constraint.MinTemp != nil && c.Constraint.MaxTemp != nil {
				assert.Less(t, *c.Constraint.MinTemp, *c.Constraint.MaxTemp, "%s/%s bounds", a.ID, c.ID)
			}
		}
	}
}

func TestCatalogReturnsFreshSlices(t *testing.T) {
	first := Catalog()
	first[0].Components[0].Constraint.MinTemp = limit(99)

	second := Catalog()
	assert.NotEqual(t, 99.0, *second[0].Components[0].Constraint.MinTemp)
}

func TestFindAssembly(t *testing.T) {
	catalog := Catalog()

	a, ok := FindAssembly(catalog, "mod-bit-torch")
	require.True(t, ok)
	assert.Equal(t, "Modified Bitumen Torch-Applied System", a.Name)

	_, ok = FindAssembly(catalog, "shake-shingle")
	assert.False(t, ok)
}
