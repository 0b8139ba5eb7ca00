package gal

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpression(t *testing.T) {
	e, err := NewExpression(TableData{
		InputPins: []int{13, 11},
		OutputPin: 17,
		Table:     []bool{false, true, true, false},
		FlipFlop:  true,
	}, GAL22V10)
	require.NoError(t, err)
	assert.Equal(t, Expression{
		OutputPin: 17,
		FlipFlop:  true,
		Rows: []Row{
			{{Pin: 13, Neg: true}, {Pin: 11, Neg: false}},
			{{Pin: 13, Neg: false}, {Pin: 11, Neg: true}},
		},
	}, e)
}

func TestNewExpressionMinterms(t *testing.T) {
	tables := [][]bool{
		{false, false, false, false},
		{false, false, false, true},
		{true, true, true, true},
		{true, false, true, true, false, false, true, false},
	}
	for _, table := range tables {
		n := 0
		for 1<<uint(n) < len(table) {
			n++
		}
		td := TableData{InputPins: []int{1, 2, 3}[:n], OutputPin: 23, Table: table}
		e, err := NewExpression(td, GAL22V10)
		require.NoError(t, err)
		assert.Len(t, e.Rows, td.Minterms())
		for _, row := range e.Rows {
			assert.Len(t, row, n)
		}
	}
}

func TestNewExpressionConstant(t *testing.T) {
	e, err := NewExpression(TableData{OutputPin: 23, Table: []bool{true}}, GAL22V10)
	require.NoError(t, err)
	require.Len(t, e.Rows, 1)
	assert.Empty(t, e.Rows[0])
}

func TestNewExpressionValidation(t *testing.T) {
	many := make([]int, 22)
	for i := range many {
		many[i] = i + 1
	}
	cases := []struct {
		name string
		td   TableData
	}{
		{"not an output", TableData{InputPins: []int{1}, OutputPin: 12, Table: []bool{false, true}}},
		{"too many inputs", TableData{InputPins: many, OutputPin: 23}},
		{"short table", TableData{InputPins: []int{1, 2}, OutputPin: 23, Table: []bool{true, false}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewExpression(c.td, GAL22V10)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "%v", err)
			assert.Equal(t, c.td.OutputPin, ve.Pin)
		})
	}
}
