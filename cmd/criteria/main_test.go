package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"natural order", []string{"eval", "--left", `"item2"`, "--op", "StringNumLessThan", "--right", `"item10"`}, "true"},
		{"ordinal order", []string{"eval", "--left", `"item2"`, "--op", "StringLessThan", "--right", `"item10"`}, "false"},
		{"bare words are strings", []string{"eval", "--left", "HELLO world", "--op", "ilike", "--right", "WORLD"}, "true"},
		{"numbers", []string{"eval", "--left", "5", "--op", "gt", "--right", "3"}, "true"},
		{"list operand", []string{"eval", "--left", "5", "--op", "between", "--right", "[1, 10]"}, "true"},
		{"nulls", []string{"eval", "--op", "Equal"}, "true"},
		{"mismatch fails closed", []string{"eval", "--left", "5", "--op", "gt", "--right", "abc"}, "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}

	_, err := run(t, "eval", "--op", "roughly")
	assert.Error(t, err)
}

func TestRange(t *testing.T) {
	out, err := run(t, "range", "--left", "15", "--op", "NotBetween", "--values", "[1, 10]")
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	out, err = run(t, "range", "--left", `"b"`, "--op", "in", "--values", `["a", "b"]`)
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	_, err = run(t, "range", "--left", "1", "--op", "Equal", "--values", "[1]")
	assert.Error(t, err)

	_, err = run(t, "range", "--left", "1", "--op", "In", "--values", "1")
	assert.Error(t, err)
}

func TestStrictRangesFromEnvironment(t *testing.T) {
	out, err := run(t, "range", "--left", "50", "--op", "Between", "--values", "[1, 10, 40]")
	require.NoError(t, err)
	assert.Equal(t, "false", out)

	out, err = run(t, "range", "--left", "5", "--op", "Between", "--values", "[1, 10, 40]")
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	t.Setenv("CRITERIA_STRICT_RANGES", "true")
	out, err = run(t, "range", "--left", "5", "--op", "Between", "--values", "[1, 10, 40]")
	require.NoError(t, err)
	assert.Equal(t, "false", out)
}

func TestSort(t *testing.T) {
	out, err := run(t, "sort", "item10", "item2", "Item1")
	require.NoError(t, err)
	assert.Equal(t, "Item1\nitem2\nitem10", out)

	out, err = run(t, "sort", "--reverse", "a2", "a10", "a1")
	require.NoError(t, err)
	assert.Equal(t, "a10\na2\na1", out)
}

func TestFilter(t *testing.T) {
	out, err := run(t, "filter",
		"--conditions", `[{"property": "age", "criteria": "gt", "value": 29.5}, {"property": "name", "criteria": "ilike", "value": "AN"}]`,
		"--records", `[{"name": "Ann", "age": 30}, {"name": "Bob", "age": 20}, {"name": "Dan", "age": 40}, {"age": 50}]`,
	)
	require.NoError(t, err)
	assert.Equal(t, "{\"age\":30,\"name\":\"Ann\"}\n{\"age\":40,\"name\":\"Dan\"}", out)

	out, err = run(t, "filter", "--records", `[{"a": 1}]`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)

	_, err = run(t, "filter", "--conditions", `[{"property": "a", "criteria": "roughly"}]`)
	assert.Error(t, err)

	_, err = run(t, "filter", "--records", `{"a": 1}`)
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "sort", "a")
	assert.Error(t, err)
}
