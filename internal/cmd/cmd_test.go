package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/xremap/internal/rulefile"
	"github.com/Alia5/xremap/internal/rules"
	th "github.com/Alia5/xremap/internal/testing"
)

const sampleRules = `windows:
  - remaps:
      - C-b: Left
      - C-f: Right
  - class_only: [firefox, chromium]
    remaps:
      - C-b: Home
  - class_not: [urxvt]
    remaps:
      - C-w: [C-S-Left, C-x]
`

func writeRules(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestCheck(t *testing.T) {
	p := writeRules(t, sampleRules)
	var out bytes.Buffer
	c := &Check{Rules: p, out: &out}

	require.NoError(t, c.Run())
	assert.Contains(t, out.String(), p+": 3 window groups, 4 bindings, unknown_class=any-only")
	assert.Contains(t, out.String(), "windows[1] class_only[chromium,firefox]: 1 remaps")
}

func TestCheckReportsPosition(t *testing.T) {
	p := writeRules(t, "windows:\n  - remaps:\n      - C-b: Left\n      - C-b: [Home, Hyper-q]\n")
	c := &Check{Rules: p, out: &bytes.Buffer{}}

	err := c.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrInvalidKeyToken)
	assert.Contains(t, err.Error(), "windows[0].remaps[1].to[1]")
	assert.Contains(t, err.Error(), p)
}

func TestCheckMissingFile(t *testing.T) {
	c := &Check{Rules: filepath.Join(t.TempDir(), "nope.yml")}
	err := c.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve(t *testing.T) {
	p := writeRules(t, sampleRules)

	var out bytes.Buffer
	require.NoError(t, (&Resolve{Class: "Firefox", Rules: p, out: &out}).Run())
	assert.Equal(t, "class Firefox: groups [0 1 2]\n"+
		"  C-b -> Home\n"+
		"  C-f -> Right\n"+
		"  C-w -> [C-S-Left, C-x]\n", out.String())

	out.Reset()
	require.NoError(t, (&Resolve{Rules: p, out: &out}).Run())
	assert.Equal(t, "class <unknown>: groups [0]\n"+
		"  C-b -> Left\n"+
		"  C-f -> Right\n", out.String())
}

func TestResolveByInstance(t *testing.T) {
	p := writeRules(t, sampleRules)

	var out bytes.Buffer
	require.NoError(t, (&Resolve{Class: "Navigator", Instance: "firefox", Rules: p, out: &out}).Run())
	assert.Equal(t, "class Navigator (firefox): groups [0 1 2]\n"+
		"  C-b -> Home\n"+
		"  C-f -> Right\n"+
		"  C-w -> [C-S-Left, C-x]\n", out.String())

	out.Reset()
	require.NoError(t, (&Resolve{Class: "X-terminal-emulator", Instance: "urxvt", Rules: p, out: &out}).Run())
	assert.Equal(t, "class X-terminal-emulator (urxvt): groups [0]\n"+
		"  C-b -> Left\n"+
		"  C-f -> Right\n", out.String())
}

func TestLogTable(t *testing.T) {
	table, err := loadTable(writeRules(t, sampleRules))
	require.NoError(t, err)

	logger, rec := th.NewRecordingLogger()
	logTable(logger, table)
	assert.Equal(t, []string{"Loaded rules", "Window rule 0", "Window rule 1", "Window rule 2"}, rec.Messages())

	only, not := filterSummary(table.Groups()[2].Filter)
	assert.Equal(t, "-", only)
	assert.Equal(t, "[urxvt]", not)
}

func TestPrintBanner(t *testing.T) {
	var out bytes.Buffer
	printBanner(&out, false)
	assert.Empty(t, out.String())

	printBanner(&out, true)
	assert.Contains(t, out.String(), "xremap started. Listening for key events...\n")
}

func TestConfigInit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "xremap.json")
	require.NoError(t, (&ConfigInit{Format: "json", Output: dest}).Run())

	var got map[string]any
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "sendevent", got["method"])
	assert.Equal(t, "200ms", got["debounce"])
	assert.Equal(t, true, got["watch"])
	assert.Equal(t, "info", got["log"].(map[string]any)["level"])
	assert.Contains(t, got["log"].(map[string]any), "raw-file")

	err = (&ConfigInit{Format: "json", Output: dest}).Run()
	assert.ErrorContains(t, err, "destination exists")
	assert.NoError(t, (&ConfigInit{Format: "toml", Output: dest, Force: true}).Run())
}

func TestConfigRulesRoundTrip(t *testing.T) {
	for _, format := range []string{"yaml", "toml", "json"} {
		t.Run(format, func(t *testing.T) {
			ext := map[string]string{"yaml": ".yml", "toml": ".toml", "json": ".json"}[format]
			dest := filepath.Join(t.TempDir(), "config"+ext)
			require.NoError(t, (&ConfigRules{Format: format, Output: dest}).Run())

			f, err := rulefile.Load(dest)
			require.NoError(t, err)
			table, err := rules.Build(f)
			require.NoError(t, err)
			assert.Len(t, table.Groups(), 3)
			assert.Equal(t, 4, table.BindingCount())
		})
	}
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "raw-file", flagName("RawFile"))
	assert.Equal(t, "debounce", flagName("Debounce"))
}

func TestBuildMapSkipsHiddenFields(t *testing.T) {
	m := buildMapFromStruct(reflect.TypeOf(Check{}))
	assert.Equal(t, map[string]any{"rules": ""}, m)
}
