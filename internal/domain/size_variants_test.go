package domain

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeVariants_KeepsShape(t *testing.T) {
	cases := map[string]string{
		"flat":     `["S","M"]`,
		"regional": `{"indian":["S"],"pakistan":["38","40"]}`,
		"empty":    `[]`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var s SizeVariants
			require.NoError(t, json.Unmarshal([]byte(raw), &s))

			out, err := json.Marshal(s)
			require.NoError(t, err)
			assert.JSONEq(t, raw, string(out))
		})
	}
}

func TestSizeVariants_NullAndStringInputs(t *testing.T) {
	var s SizeVariants
	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.False(t, s.Regional)
	assert.True(t, s.IsEmpty())

	require.NoError(t, json.Unmarshal([]byte(`"S, M"`), &s))
	assert.Equal(t, []string{"S", "M"}, s.Flat)
}

func TestSizeVariants_RegionalFillsMissingRegion(t *testing.T) {
	var s SizeVariants
	require.NoError(t, json.Unmarshal([]byte(`{"indian":["L"]}`), &s))

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"indian":["L"],"pakistan":[]}`, string(out))
}

func TestSizeVariants_Toggle(t *testing.T) {
	s := RegionalSizes(nil, nil)

	s, err := s.Toggle(RegionIndian, "M")
	require.NoError(t, err)
	s, err = s.Toggle(RegionPakistan, "38")
	require.NoError(t, err)
	assert.True(t, s.Has(RegionIndian, "M"))
	assert.True(t, s.Has(RegionPakistan, "38"))

	s, err = s.Toggle(RegionIndian, "M")
	require.NoError(t, err)
	assert.False(t, s.Has(RegionIndian, "M"))
	assert.Equal(t, "Pakistan: 38", s.String())

	_, err = s.Toggle("uk", "10")
	assert.Error(t, err)
}

func TestProperty_ToggleTwiceRestoresSelection(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("toggling the same size twice is a no-op", prop.ForAll(
		func(size string, region string, start []string) bool {
			s := RegionalSizes(start, start)
			before := s.Has(region, size)

			once, err := s.Toggle(region, size)
			if err != nil {
				return false
			}
			twice, err := once.Toggle(region, size)
			if err != nil {
				return false
			}

			return once.Has(region, size) != before && twice.Has(region, size) == before
		},
		gen.OneConstOf("XS", "S", "M", "L", "36", "38"),
		gen.OneConstOf(RegionIndian, RegionPakistan),
		gen.SliceOf(gen.OneConstOf("XL", "XXL", "44", "46")),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
