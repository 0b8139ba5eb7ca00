package gal

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const config22v10JSON = `{
	"InputPins": [1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23],
	"NumFuses": 5892,
	"TotalNumPins": 24,
	"OutputPins": [[14, 8], [15, 10], [16,12], [17, 14], [18, 16], [19, 16], [20, 14], [21, 12], [22, 10], [23, 8]],
	"SpecialPins": [[13, 42]]
}`

func TestConfigGeometry(t *testing.T) {
	cfg := GAL22V10
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 44, cfg.RowLen())

	max, ok := cfg.MaxTerms(23)
	assert.True(t, ok)
	assert.Equal(t, 8, max)
	_, ok = cfg.MaxTerms(12)
	assert.False(t, ok)
}

func TestFuseRegions22V10(t *testing.T) {
	cfg := GAL22V10
	cases := []struct {
		pin, first, last int
	}{
		{23, 44, 440},
		{22, 440, 924},
		{17, 3652, 4312},
		{14, 5368, 5764},
	}
	for _, c := range cases {
		first, err := cfg.FirstFuse(c.pin)
		require.NoError(t, err)
		last, err := cfg.LastFuse(c.pin)
		require.NoError(t, err)
		assert.Equal(t, c.first, first, "first fuse of pin %d", c.pin)
		assert.Equal(t, c.last, last, "last fuse of pin %d", c.pin)
	}
	sp, err := cfg.SPRow()
	require.NoError(t, err)
	assert.Equal(t, 5764, sp)

	s0, s1, err := cfg.ModeFuses(23)
	require.NoError(t, err)
	assert.Equal(t, []int{5808, 5809}, []int{s0, s1})
	s0, s1, err = cfg.ModeFuses(14)
	require.NoError(t, err)
	assert.Equal(t, []int{5826, 5827}, []int{s0, s1})

	_, err = cfg.FirstFuse(13)
	assert.Error(t, err)
	_, _, err = cfg.ModeFuses(1)
	assert.Error(t, err)
}

func TestFuseRegionsDisjoint(t *testing.T) {
	cfg := GAL22V10
	for _, a := range cfg.Outputs {
		for _, b := range cfg.Outputs {
			if a.Pin == b.Pin {
				continue
			}
			af, _ := cfg.FirstFuse(a.Pin)
			al, _ := cfg.LastFuse(a.Pin)
			bf, _ := cfg.FirstFuse(b.Pin)
			bl, _ := cfg.LastFuse(b.Pin)
			assert.True(t, al <= bf || bl <= af, "pins %d and %d overlap", a.Pin, b.Pin)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := GAL22V10.clone()
	cfg.NumFuses = 5000
	assert.Error(t, cfg.Validate())

	cfg = GAL22V10.clone()
	cfg.Outputs = append(cfg.Outputs, OutputPin{Pin: 23, MaxTerms: 8})
	assert.Error(t, cfg.Validate())

	cfg = GAL22V10.clone()
	cfg.Specials = []SpecialPin{{13, 44}}
	assert.Error(t, cfg.Validate())

	cfg = GAL22V10.clone()
	cfg.Inputs = append(cfg.Inputs, 25)
	assert.Error(t, cfg.Validate())

	assert.Error(t, Config{NumPins: 24}.Validate())
}

func TestConfigWithoutOutputs(t *testing.T) {
	cfg := Config{Name: "empty", NumFuses: 100, NumPins: 4, Inputs: []int{1, 2}}
	_, err := cfg.SPRow()
	assert.EqualError(t, err, "empty has no output pins")
	_, _, err = cfg.ModeFuses(3)
	assert.Error(t, err)
	_, err = cfg.FirstFuse(3)
	assert.Error(t, err)
	assert.NotPanics(t, func() { _, _ = BuildGAL(nil, cfg) })
}

func TestParseChip(t *testing.T) {
	for _, name := range []string{"g22v10", "GAL22V10", "22v10", "gal22v10"} {
		cfg, err := ParseChip(name)
		require.NoError(t, err, name)
		assert.Equal(t, "GAL22V10", cfg.Name)
	}
	_, err := ParseChip("g16v8")
	assert.Error(t, err)
	assert.Equal(t, []string{"GAL22V10"}, Chips())
}

func TestParseChipReturnsCopy(t *testing.T) {
	cfg, err := ParseChip("g22v10")
	require.NoError(t, err)
	cfg.Inputs[0] = 99
	assert.Equal(t, 1, GAL22V10.Inputs[0])
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(config22v10JSON))
	require.NoError(t, err)
	want := GAL22V10.clone()
	want.Name = ""
	assert.Equal(t, want, cfg)

	_, err = LoadConfig(strings.NewReader(`{"NumFuses": 1, "Bogus": true}`))
	assert.Error(t, err)
	_, err = LoadConfig(strings.NewReader(`{"OutputPins": [[14]]}`))
	assert.Error(t, err)
}

func TestConfigPairsEncoding(t *testing.T) {
	b, err := json.Marshal(GAL22V10)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"OutputPins":[[14,8],[15,10]`)
	assert.Contains(t, string(b), `"SpecialPins":[[13,42]]`)
	assert.Contains(t, string(b), `"TotalNumPins":24`)
}
