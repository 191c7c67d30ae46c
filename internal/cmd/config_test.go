package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func TestConfigInitJSON(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "convert.json")
	c := &ConfigInit{Command: "convert", Format: "json", Output: dest}
	require.NoError(t, c.Run(discardLogger()))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{"header": false}, got)
}

func TestConfigInitYAML(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "json2cs.yml")
	c := &ConfigInit{Command: "json2cs", Format: "yml", Output: dest}
	require.NoError(t, c.Run(discardLogger()))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "RootObject", got["root_class"])
	assert.Equal(t, true, got["pascal_case"])
	assert.NotContains(t, got, "file")
}

func TestConfigInitTOML(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "watch.toml")
	c := &ConfigInit{Command: "watch", Format: "toml", Output: dest}
	require.NoError(t, c.Run(discardLogger()))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `debounce = "300ms"`)
	assert.NotContains(t, string(data), "out_dir")
	assert.NotContains(t, string(data), "dirs")
	assert.NotContains(t, string(data), "ready")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "convert.json")
	require.NoError(t, os.WriteFile(dest, []byte("{}"), 0o644))

	c := &ConfigInit{Command: "convert", Format: "json", Output: dest}
	assert.ErrorContains(t, c.Run(discardLogger()), "--force")

	c.Force = true
	require.NoError(t, c.Run(discardLogger()))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "header")
}

func TestConfigInitGlobal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG is not consulted on windows")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	c := &ConfigInit{Command: "watch", Format: "yaml", Global: true}
	require.NoError(t, c.Run(discardLogger()))
	assert.FileExists(t, filepath.Join(xdg, "cs2ts", "watch.yaml"))
}

func TestConfigInitErrors(t *testing.T) {
	dir := t.TempDir()
	assert.ErrorContains(t, (&ConfigInit{Command: "convert", Format: "ini", Output: filepath.Join(dir, "x")}).Run(discardLogger()), "unsupported format")
	assert.ErrorContains(t, (&ConfigInit{Command: "server", Format: "json", Output: filepath.Join(dir, "y")}).Run(discardLogger()), "unknown command")
}

func TestConfigKey(t *testing.T) {
	type sample struct {
		OutDir    string
		Header    bool
		RootClass string `name:"root-class-name"`
		URL       string
	}
	typ := reflect.TypeOf(sample{})
	want := []string{"out_dir", "header", "root_class_name", "url"}
	for i, w := range want {
		assert.Equal(t, w, configKey(typ.Field(i)))
	}
}

type configuredCLI struct {
	Convert  Convert  `cmd:""`
	Watch    Watch    `cmd:""`
	JSONToCS JSONToCS `cmd:"" name:"json2cs"`
}

func parseWithConfig(t *testing.T, loader kong.ConfigurationLoader, path string, args ...string) *configuredCLI {
	t.Helper()
	var cli configuredCLI
	parser, err := kong.New(&cli,
		kong.Configuration(loader, path),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return &cli
}

func TestConfigInitTemplateLoads(t *testing.T) {
	loaders := map[string]kong.ConfigurationLoader{
		"json": kong.JSON,
		"yaml": kongyaml.Loader,
		"toml": kongtoml.Loader,
	}
	for format, loader := range loaders {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			for _, command := range []string{"convert", "watch", "json2cs"} {
				dest := filepath.Join(dir, command+"."+format)
				require.NoError(t, (&ConfigInit{Command: command, Format: format, Output: dest}).Run(discardLogger()))
			}

			cli := parseWithConfig(t, loader, filepath.Join(dir, "convert."+format), "convert")
			assert.Empty(t, cli.Convert.Output)
			assert.Empty(t, cli.Convert.OutDir)
			assert.False(t, cli.Convert.Header)

			cli = parseWithConfig(t, loader, filepath.Join(dir, "convert."+format), "convert", "--out-dir", dir)
			assert.Equal(t, dir, cli.Convert.OutDir)

			cli = parseWithConfig(t, loader, filepath.Join(dir, "watch."+format), "watch", dir)
			assert.Equal(t, 300*time.Millisecond, cli.Watch.Debounce)

			cli = parseWithConfig(t, loader, filepath.Join(dir, "json2cs."+format), "json2cs")
			assert.Equal(t, "RootObject", cli.JSONToCS.RootClass)
			assert.True(t, cli.JSONToCS.PascalCase)
		})
	}
}

func TestConfigFileKeysResolve(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cs2ts.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"root_class": "Account", "pascal_case": false, "header": true, "debounce": "1s"}`), 0o644))

	cli := parseWithConfig(t, kong.JSON, p, "json2cs")
	assert.Equal(t, "Account", cli.JSONToCS.RootClass)
	assert.False(t, cli.JSONToCS.PascalCase)

	cli = parseWithConfig(t, kong.JSON, p, "watch", dir)
	assert.True(t, cli.Watch.Header)
	assert.Equal(t, time.Second, cli.Watch.Debounce)
}
