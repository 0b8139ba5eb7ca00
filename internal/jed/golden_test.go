package jed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pborges/ogal/internal/gal"
	"github.com/pborges/ogal/internal/testutil"
)

func lit(pin int, neg bool) gal.Pin { return gal.Pin{Pin: pin, Neg: neg} }

func TestGoldenExpressions(t *testing.T) {
	cases := []struct {
		name    string
		jedPath string
		exprs   []gal.Expression
	}{
		{
			name:    "four outputs, pin 23 driven three times",
			jedPath: "expressions.jed",
			exprs: []gal.Expression{
				{OutputPin: 23, FlipFlop: true, Rows: []gal.Row{
					{lit(11, false), lit(10, true)},
				}},
				{OutputPin: 17, Rows: []gal.Row{
					{lit(11, false), lit(10, false)},
				}},
				{OutputPin: 19, Rows: []gal.Row{
					{lit(11, true), lit(10, false)},
					{lit(11, false), lit(10, true)},
				}},
				{OutputPin: 18, Rows: []gal.Row{
					{lit(11, true), lit(10, false)},
					{lit(11, false), lit(10, true)},
					{lit(11, false), lit(10, false)},
				}},
				{OutputPin: 23, FlipFlop: true, Rows: []gal.Row{
					{lit(2, true), lit(3, true)},
					{lit(2, true), lit(3, false)},
					{lit(2, false), lit(3, false)},
				}},
				{OutputPin: 23, FlipFlop: true, Rows: []gal.Row{
					{lit(2, true), lit(3, false)},
					{lit(2, false), lit(3, true)},
				}},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := gal.BuildGAL(c.exprs, gal.GAL22V10)
			require.NoError(t, err)

			expected, err := os.ReadFile(filepath.Join("testdata", c.jedPath))
			require.NoError(t, err)
			want, err := testutil.ParseJEDEC(expected)
			require.NoError(t, err)
			if diff := testutil.CompareFuses(gal.GAL22V10, g.Fuses, want.Fuses); diff != "" {
				t.Fatalf("%s", diff)
			}

			got := MakeJEDEC(Config{Creator: "ogal"}, g)
			assert.Equal(t, string(expected), got)
		})
	}
}
