package gal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesRoundTrip(t *testing.T) {
	tables := []TableData{
		{InputPins: []int{13, 11}, OutputPin: 17, Table: []bool{false, false, false, true}},
		{InputPins: []int{1}, OutputPin: 23, Table: []bool{true, false}, FlipFlop: true},
	}
	b, err := MarshalTables(tables)
	require.NoError(t, err)
	s := string(b)
	assert.True(t, strings.HasPrefix(s, "{\n  \"TableData\": ["), s)
	assert.True(t, strings.HasSuffix(s, "}\n"))
	for _, key := range []string{`"inputPins"`, `"outputPin"`, `"table"`, `"dff"`} {
		assert.Contains(t, s, key)
	}

	got, err := UnmarshalTables(b)
	require.NoError(t, err)
	assert.Equal(t, tables, got)
}

func TestUnmarshalTablesBareArray(t *testing.T) {
	got, err := UnmarshalTables([]byte(` [{"inputPins":[1,2],"outputPin":23,"table":[false,true,true,false],"dff":false}]`))
	require.NoError(t, err)
	assert.Equal(t, []TableData{{InputPins: []int{1, 2}, OutputPin: 23, Table: []bool{false, true, true, false}}}, got)
}

func TestMarshalTablesEmpty(t *testing.T) {
	b, err := MarshalTables(nil)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"TableData\": []\n}\n", string(b))
}

func TestUnmarshalTablesErrors(t *testing.T) {
	for _, in := range []string{``, `{`, `[1]`, `{"TableData": 3}`} {
		_, err := UnmarshalTables([]byte(in))
		assert.Error(t, err, in)
	}
}
