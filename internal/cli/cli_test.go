package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/config"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs/billy"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint/rules/a11y"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

var sampleTree = map[string]string{
	"src/App.jsx":                 "export const App = () => (\n  <button onClick={save}>Save</button>\n);\n",
	"src/Menu.tsx":                "export const Menu = () => <li id=\"menu\" onClick={open}>Open</li>;\n",
	"src/util.js":                 "export const x = <div onClick={f} />;\n",
	"node_modules/pkg/Widget.jsx": "export default () => <a onClick={go} />;\n",
}

func TestLintCommand_ReportsIssues(t *testing.T) {
	dir := writeTree(t, sampleTree)

	stdout, _, err := run(t, "lint", dir, "--format", "json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLintFailed)

	var out struct {
		Issues []lint.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Issues, 1)

	issue := out.Issues[0]
	assert.Equal(t, a11y.InteractiveIDRuleName, issue.Rule)
	assert.Equal(t, a11y.InteractiveIDMessage, issue.Message)
	assert.Equal(t, filepath.Join(dir, "src", "App.jsx"), issue.Location.File)
	assert.Equal(t, 2, issue.Location.StartLine)
	assert.Equal(t, 10, issue.Location.StartColumn)
}

func TestLintCommand_Clean(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"src/App.jsx": `export const App = () => <button className="save" onClick={save} />;`,
	})

	stdout, _, err := run(t, "lint", dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestLintCommand_Config(t *testing.T) {
	dir := writeTree(t, sampleTree)
	cfgPath := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte(`version: "0.1.0"
extensions: [".jsx", ".tsx", ".js"]
rules: "no-interactive-element-without-id-classname": severity: "warning"
`), 0o644))

	stdout, _, err := run(t, "lint", "--config", cfgPath, dir)
	require.NoError(t, err, "warnings do not fail the run")
	assert.Contains(t, stdout, "App.jsx:2:10 [no-interactive-element-without-id-classname]")
	assert.Contains(t, stdout, "util.js:1:22")
	assert.Contains(t, stdout, "(warning)")
	assert.NotContains(t, stdout, "Widget.jsx")
}

func TestLintCommand_ConfigDisablesRule(t *testing.T) {
	dir := writeTree(t, sampleTree)
	cfgPath := filepath.Join(dir, "off.cue")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`version: "0.1.0"
rules: "no-interactive-element-without-id-classname": severity: "off"
`), 0o644))

	stdout, _, err := run(t, "lint", "-c", cfgPath, dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestLintCommand_InvalidConfig(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"bad.cue": "version: \"0.1.0\"\nrules: \"no-such-rule\": {}\n",
	})

	_, _, err := run(t, "lint", "--config", filepath.Join(dir, "bad.cue"), dir)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestLintCommand_EnvFormat(t *testing.T) {
	dir := writeTree(t, sampleTree)
	t.Setenv("JSXLINT_FORMAT", "sarif")

	stdout, _, err := run(t, "lint", dir)
	assert.ErrorIs(t, err, ErrLintFailed)
	assert.Contains(t, stdout, `"version": "2.1.0"`)
}

func TestLintCommand_FlagOverridesEnv(t *testing.T) {
	dir := writeTree(t, sampleTree)
	t.Setenv("JSXLINT_FORMAT", "sarif")

	stdout, _, err := run(t, "lint", dir, "--format", "text")
	assert.ErrorIs(t, err, ErrLintFailed)
	assert.Contains(t, stdout, "(error)")
	assert.NotContains(t, stdout, "2.1.0")
}

func TestLintCommand_ParseError(t *testing.T) {
	dir := writeTree(t, map[string]string{"src/Broken.jsx": "<div>\n</span>\n"})

	stdout, stderr, err := run(t, "lint", dir)
	assert.ErrorIs(t, err, ErrLintFailed)
	assert.Contains(t, stdout, "[parse-error] expected closing tag for <div>, found </span>")
	assert.Contains(t, stderr, "failed to parse file")
}

func TestLintCommand_Verbose(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.jsx": `<b id="x" onClick={f} />;`})

	_, stderr, err := run(t, "lint", "-v", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "collected files")
	assert.Contains(t, stderr, "lint finished")
}

func TestLintCommand_Errors(t *testing.T) {
	dir := writeTree(t, sampleTree)

	t.Run("invalid format", func(t *testing.T) {
		_, _, err := run(t, "lint", dir, "--format", "xml")
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	})

	t.Run("missing path", func(t *testing.T) {
		_, _, err := run(t, "lint", filepath.Join(dir, "nope"))
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	})
}

// commitTree initialises a repository in dir and commits everything in it.
func commitTree(t *testing.T, dir string) {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.AddWithOptions(&git.AddOptions{All: true}))
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestLintCommand_Changed(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"src/App.jsx":  "export const App = () => <button onClick={save} />;\n",
		"src/Menu.jsx": "export const Menu = () => <li onClick={open} />;\n",
		"lib/Util.jsx": "export const Util = () => <i onClick={run} />;\n",
	})
	commitTree(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "App.jsx"),
		[]byte("export const App = () => <button onClick={submit} />;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "Util.jsx"),
		[]byte("export const Util = () => <i onClick={stop} />;\n"), 0o644))
	t.Chdir(dir)

	t.Run("whole repository", func(t *testing.T) {
		stdout, _, err := run(t, "lint", "--changed", "--format", "json")
		assert.ErrorIs(t, err, ErrLintFailed)

		var out struct {
			Issues []lint.Issue `json:"issues"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &out))

		var files []string
		for _, issue := range out.Issues {
			files = append(files, issue.Location.File)
		}
		assert.Equal(t, []string{
			filepath.Join(dir, "lib", "Util.jsx"),
			filepath.Join(dir, "src", "App.jsx"),
		}, files)
	})

	t.Run("limited to a path", func(t *testing.T) {
		stdout, _, err := run(t, "lint", "--changed", "src")
		assert.ErrorIs(t, err, ErrLintFailed)
		assert.Contains(t, stdout, filepath.Join(dir, "src", "App.jsx")+":1:")
		assert.NotContains(t, stdout, "Menu.jsx")
		assert.NotContains(t, stdout, "Util.jsx")
	})

	t.Run("clean worktree", func(t *testing.T) {
		clean := writeTree(t, map[string]string{"App.jsx": "<b onClick={f} />;\n"})
		commitTree(t, clean)
		t.Chdir(clean)

		stdout, _, err := run(t, "lint", "--changed")
		require.NoError(t, err)
		assert.Empty(t, stdout)
	})
}

func TestInitCommand(t *testing.T) {
	dir := writeTree(t, sampleTree)
	t.Chdir(dir)

	stdout, _, err := run(t, "init", "--preset", config.PresetStrict)
	require.NoError(t, err)
	assert.Equal(t, "wrote .jsxlint.cue (strict preset)\n", stdout)

	cfg, err := config.Load(context.Background(), billy.NewBaseOSFS(), config.FileName)
	require.NoError(t, err)
	assert.Equal(t, config.RuleConfig{Severity: "error"}, cfg.Rules[a11y.InteractiveIDRuleName])

	t.Run("lint picks up the written file", func(t *testing.T) {
		stdout, _, err := run(t, "lint")
		assert.ErrorIs(t, err, ErrLintFailed)
		assert.Contains(t, stdout, "util.js:1:22")
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, _, err := run(t, "init")
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	})

	t.Run("overwrites with force", func(t *testing.T) {
		_, _, err := run(t, "init", "--force")
		require.NoError(t, err)

		cfg, err := config.Load(context.Background(), billy.NewBaseOSFS(), config.FileName)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultExtensions, cfg.Extensions)
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, _, err := run(t, "init", "--force", "--preset", "lenient")
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	})
}

func TestRulesCommand(t *testing.T) {
	stdout, _, err := run(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, stdout, a11y.InteractiveIDRuleName)
	assert.Contains(t, stdout, "Require interactive elements to have either an id or className attribute.")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "jsxlint dev\n", stdout)
}

func TestCollectFiles(t *testing.T) {
	memFS := billy.NewInMemoryFS()
	for _, name := range []string{
		"src/App.jsx",
		"src/Menu.tsx",
		"src/util.js",
		"src/dist/Bundle.jsx",
		"src/node_modules/pkg/Widget.jsx",
		"legacy/Old.js",
	} {
		require.NoError(t, memFS.WriteFile(name, []byte("<a />;"), 0o644))
	}

	cfg := config.Default()
	cfg.Ignore = append(cfg.Ignore, "dist")

	files, err := collectFiles(memFS, cfg, []string{"src", "legacy/Old.js", "src/App.jsx"})
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy/Old.js", "src/App.jsx", "src/Menu.tsx"}, files)

	_, err = collectFiles(memFS, cfg, []string{"missing"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestWithinAny(t *testing.T) {
	scopes := []string{filepath.FromSlash("/repo/src")}

	assert.True(t, withinAny(filepath.FromSlash("/repo/src/App.jsx"), scopes))
	assert.True(t, withinAny(filepath.FromSlash("/repo/src"), scopes))
	assert.False(t, withinAny(filepath.FromSlash("/repo/srcx/App.jsx"), scopes))
	assert.False(t, withinAny(filepath.FromSlash("/repo/App.jsx"), scopes))
}
