package lint

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reporterIssues() []Issue {
	return []Issue{
		NewIssue("b-rule", SeverityWarning, "second", &SourceLocation{
			File: "src/App.jsx", StartLine: 4, StartColumn: 2, EndLine: 4, EndColumn: 9,
		}),
		NewIssue("a-rule", SeverityError, "first", &SourceLocation{
			File: "src/App.jsx", StartLine: 1, StartColumn: 0, EndLine: 1, EndColumn: 5,
		}),
		NewIssue("a-rule", SeverityInfo, "third", &SourceLocation{
			File: "src/Menu.jsx", StartLine: 2, StartColumn: 1, EndLine: 2, EndColumn: 3,
		}),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"", FormatText},
		{"text", FormatText},
		{"JSON", FormatJSON},
		{"sarif", FormatSARIF},
	}
	for _, tt := range tests {
		f, err := ParseFormat(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, f)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Format(9).String())
}

func TestReporterText(t *testing.T) {
	var buf bytes.Buffer
	issues := reporterIssues()
	require.NoError(t, NewReporter(&buf, FormatText).Report(issues))

	assert.Equal(t,
		"src/App.jsx:1:0 [a-rule] first (error)\n"+
			"src/App.jsx:4:2 [b-rule] second (warning)\n"+
			"src/Menu.jsx:2:1 [a-rule] third (info)\n",
		buf.String())

	// The caller's slice keeps its order.
	assert.Equal(t, "b-rule", issues[0].Rule)
}

func TestReporterTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText).Report(nil))
	assert.Empty(t, buf.String())
}

func TestReporterJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatJSON).Report(reporterIssues()))

	var out struct {
		Issues []Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Issues, 3)
	assert.Equal(t, "first", out.Issues[0].Message)
	assert.Equal(t, SeverityError, out.Issues[0].Severity)
	assert.Equal(t, 5, out.Issues[0].Location.EndColumn)

	buf.Reset()
	require.NoError(t, NewReporter(&buf, FormatJSON).Report(nil))
	assert.JSONEq(t, `{"issues": []}`, buf.String())
}

func TestReporterSARIF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatSARIF).Report(reporterIssues()))

	var out struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
							EndColumn   int `json:"endColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "2.1.0", out.Version)
	require.Len(t, out.Runs, 1)
	run := out.Runs[0]
	assert.Equal(t, "jsxlint", run.Tool.Driver.Name)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "a-rule", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "b-rule", run.Tool.Driver.Rules[1].ID)

	require.Len(t, run.Results, 3)
	assert.Equal(t, []string{"error", "warning", "note"},
		[]string{run.Results[0].Level, run.Results[1].Level, run.Results[2].Level})

	region := run.Results[0].Locations[0].PhysicalLocation.Region
	assert.Equal(t, 1, region.StartLine)
	assert.Equal(t, 1, region.StartColumn)
	assert.Equal(t, 6, region.EndColumn)
	assert.Equal(t, "file://src/App.jsx", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestReporterSARIFEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatSARIF).Report(nil))
	assert.Contains(t, buf.String(), `"results": []`)
	assert.Contains(t, buf.String(), `"rules": []`)
}
