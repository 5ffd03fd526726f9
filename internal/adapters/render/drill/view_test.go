package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomdyson/go-amee/internal/domain"
)

func TestRenderResolvedDrill(t *testing.T) {
	output, err := Drill("/home/energy/quantity", domain.Choices{"type": "gas"}, domain.Resolved("CD310BEBAC52"))

	require.NoError(t, err)
	assert.Contains(t, output, "Drilldown /home/energy/quantity")
	assert.Contains(t, output, "type = gas")
	assert.Contains(t, output, "data item: CD310BEBAC52")
	assert.NotContains(t, output, "choose")
}

func TestRenderNextChoice(t *testing.T) {
	output, err := Drill("/transport/car/generic", nil, domain.Next("fuel", []string{"diesel", "petrol"}))

	require.NoError(t, err)
	assert.Contains(t, output, "no choices made")
	assert.Contains(t, output, "choose fuel (2 options)")
	assert.Contains(t, output, "- diesel")
	assert.Contains(t, output, "- petrol")
}

func TestRenderNextChoiceWithoutOptions(t *testing.T) {
	output, err := Drill("/transport/car/generic", nil, domain.Next("fuel", nil))

	require.NoError(t, err)
	assert.Contains(t, output, "No options available.")
}

func TestRenderProfiles(t *testing.T) {
	output, err := Profiles([]string{"AAA111", "BBB222"})
	require.NoError(t, err)
	assert.Contains(t, output, "profiles: 2")
	assert.Contains(t, output, "AAA111")
	assert.Contains(t, output, "BBB222")

	output, err = Profiles(nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No profiles.")
}

func TestRenderAmount(t *testing.T) {
	output, err := Amount("/profiles/PROF01/home/energy/quantity/ITEM01", domain.Amount{Unit: "kg/year", Value: 120})

	require.NoError(t, err)
	assert.Contains(t, output, "/profiles/PROF01/home/energy/quantity/ITEM01")
	assert.Contains(t, output, "amount: 120 kg/year")
}
