package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("BASE"))
	assert.True(t, ValidName("extra"))
	assert.True(t, ValidName(" Base "))
	assert.False(t, ValidName("PRO"))
	assert.False(t, ValidName(""))
}

func TestValidCycle(t *testing.T) {
	assert.True(t, ValidCycle("monthly"))
	assert.True(t, ValidCycle("YEARLY"))
	assert.False(t, ValidCycle("weekly"))
	assert.False(t, ValidCycle(""))
}

func TestHasExtraProdData(t *testing.T) {
	assert.True(t, HasExtraProdData("EXTRA"))
	assert.True(t, HasExtraProdData("extra"))
	assert.False(t, HasExtraProdData("BASE"))
	assert.False(t, HasExtraProdData(""))
}
