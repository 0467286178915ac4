package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitLabel(t *testing.T) {
	assert.Equal(t, "g", UnitLabel("g"))
	assert.Equal(t, "tbsp", UnitLabel("big_spoon"))
	assert.Equal(t, "to taste", UnitLabel("as_your_taste"))

	// Unknown codes fall back to the raw code so old rows keep
	// rendering.
	assert.Equal(t, "cubit", UnitLabel("cubit"))
}

func TestIsValidUnit(t *testing.T) {
	assert.True(t, IsValidUnit("g"))
	assert.True(t, IsValidUnit("little_cpoon"))
	assert.False(t, IsValidUnit("cubit"))
	assert.False(t, IsValidUnit(""))
}
