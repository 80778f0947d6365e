package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExplainText(t *testing.T) {
	out, err := execute(t, "", "explain", "--color=never", "(abc|def).*ghi")
	require.NoError(t, err)
	assert.Contains(t, out, "strategy:")
	assert.Contains(t, out, "UseLookback")
	assert.NotContains(t, out, "sample:")

	out, err = execute(t, "", "explain", "--color=never", "--input", "prefix def xxx ghi suffix", "(abc|def).*ghi")
	require.NoError(t, err)
	assert.Contains(t, out, "sample:")
	assert.Contains(t, out, "search: [7,18) def xxx ghi")
	assert.Contains(t, out, "match:  false")
}

func TestExplainYAML(t *testing.T) {
	out, err := execute(t, "", "explain", "-o", "yaml", "--input", "Huckleberry", "Tom|Sawyer|Huckleberry|Finn")
	require.NoError(t, err)

	var report explainReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, "UseBitNFA", report.Plan.Strategy)
	assert.Equal(t, "alternation", report.Plan.Shape)
	assert.True(t, report.Plan.BitNFA)
	require.NotNil(t, report.Sample)
	assert.True(t, report.Sample.ASCII)
	assert.True(t, report.Sample.Match)
	assert.Equal(t, "[0,11)", report.Sample.Search)
	assert.Equal(t, "Huckleberry", report.Sample.Text)
}

func TestExplainSampleQuoting(t *testing.T) {
	out, err := execute(t, "", "explain", "-o", "yaml", "--input", "a\tb", "a.b")
	require.NoError(t, err)

	var report explainReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.Sample)
	assert.True(t, report.Sample.ASCII)
	assert.Equal(t, `"a\tb"`, report.Sample.Text)

	// an empty sample is still reported
	out, err = execute(t, "", "explain", "-o", "yaml", "--input", "", "a*")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.Sample)
	assert.True(t, report.Sample.Match)
}

func TestExplainErrors(t *testing.T) {
	_, err := execute(t, "", "explain", "-o", "json", "a+")
	assert.ErrorContains(t, err, "invalid output format")

	_, err = execute(t, "", "explain", "^a")
	assert.Error(t, err)
}
