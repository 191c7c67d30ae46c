package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/cs2ts/internal/codegen/generator"
	"github.com/Alia5/cs2ts/internal/log"
)

const personCS = `public class Person
{
    public string Name { get; set; }
    public int? Age { get; set; }
}`

const personTS = "export interface Person {\n  name: string;\n  age?: number;\n}"

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestConvertStdinToStdout(t *testing.T) {
	var out bytes.Buffer
	c := &Convert{}
	err := c.run(discardLogger(), log.NewRaw(nil), strings.NewReader(personCS), &out, false)
	require.NoError(t, err)
	assert.Equal(t, personTS+"\n", out.String())
}

func TestConvertInteractiveStdinRefused(t *testing.T) {
	c := &Convert{}
	err := c.run(discardLogger(), log.NewRaw(nil), strings.NewReader(personCS), &bytes.Buffer{}, true)
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestConvertSingleFileToOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "person.cs", personCS)
	dest := filepath.Join(dir, "gen", "person.ts")

	var stdout bytes.Buffer
	c := &Convert{Files: []string{src}, Output: dest, Codegen: Codegen{Header: true}}
	require.NoError(t, c.run(discardLogger(), log.NewRaw(nil), nil, &stdout, true))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "// Code generated by cs2ts "), content)
	assert.Contains(t, content, "DO NOT EDIT.")
	assert.True(t, strings.HasSuffix(content, personTS+"\n"))
}

func TestConvertSingleFileToStdout(t *testing.T) {
	src := writeSource(t, t.TempDir(), "person.cs", personCS)
	var stdout bytes.Buffer
	c := &Convert{Files: []string{src}, Codegen: Codegen{Header: true}}
	require.NoError(t, c.run(discardLogger(), log.NewRaw(nil), nil, &stdout, true))
	// stdout never gets a banner
	assert.Equal(t, personTS+"\n", stdout.String())
}

func TestConvertOutDir(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "Person.cs", personCS)
	b := writeSource(t, dir, "Color.cs", "public enum Color { Red }\npublic class Paint { public Color Color { get; set; } }")
	outDir := filepath.Join(dir, "out")

	c := &Convert{Files: []string{a, b}, OutDir: outDir}
	require.NoError(t, c.run(discardLogger(), log.NewRaw(nil), nil, &bytes.Buffer{}, true))

	got, err := os.ReadFile(filepath.Join(outDir, "Person.ts"))
	require.NoError(t, err)
	assert.Equal(t, personTS+"\n", string(got))

	got, err = os.ReadFile(filepath.Join(outDir, "Color.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export enum Color {\n  Red = \"Red\",\n}\n\nexport interface Paint {\n  color: Color;\n}\n", string(got))
}

func TestConvertTypeMap(t *testing.T) {
	var out bytes.Buffer
	c := &Convert{Codegen: Codegen{TypeMap: map[string]string{"DateTime": "Date", "Money": "number"}}}
	src := "public class Invoice { public DateTime Due { get; set; } public Money Total { get; set; } public Guid Id { get; set; } }"
	require.NoError(t, c.run(discardLogger(), log.NewRaw(nil), strings.NewReader(src), &out, false))
	assert.Equal(t, "export interface Invoice {\n  due: Date;\n  total: number;\n  id: string;\n}\n", out.String())
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.cs", personCS)
	noClass := writeSource(t, dir, "enum.cs", "public enum Only { A }")
	empty := writeSource(t, dir, "empty.cs", "public class Empty { }")

	tests := []struct {
		name   string
		cmd    Convert
		stdin  string
		target error
		msg    string
	}{
		{name: "several files without out dir", cmd: Convert{Files: []string{good, noClass}}, msg: "--out-dir is required"},
		{name: "output and out dir", cmd: Convert{Files: []string{good}, Output: "x.ts", OutDir: dir}, msg: "cannot be used together"},
		{name: "no classes", cmd: Convert{Files: []string{noClass}}, target: generator.ErrNoClassesFound, msg: "enum.cs"},
		{name: "empty properties", cmd: Convert{Files: []string{empty}, OutDir: t.TempDir()}, target: generator.ErrEmptyProperties, msg: "Empty"},
		{name: "empty stdin", cmd: Convert{}, stdin: "  ", target: generator.ErrEmptyInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.run(discardLogger(), log.NewRaw(nil), strings.NewReader(tt.stdin), &bytes.Buffer{}, false)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if tt.msg != "" {
				assert.ErrorContains(t, err, tt.msg)
			}
		})
	}
}

func TestConvertRawLog(t *testing.T) {
	var raw bytes.Buffer
	src := writeSource(t, t.TempDir(), "person.cs", personCS)
	c := &Convert{Files: []string{src}}
	require.NoError(t, c.run(discardLogger(), log.NewRaw(&raw), nil, &bytes.Buffer{}, true))

	assert.Contains(t, raw.String(), "<< "+src)
	assert.Contains(t, raw.String(), ">> "+src)
	assert.Contains(t, raw.String(), "\texport interface Person {")
}

func TestOutputPath(t *testing.T) {
	src := filepath.Join("src", "models", "User.cs")
	tests := []struct {
		name string
		root string
		dir  string
		want string
	}{
		{"next to source", "", "", filepath.Join("src", "models", "User.ts")},
		{"flat out dir", "", "out", filepath.Join("out", "User.ts")},
		{"relative to root", "src", "out", filepath.Join("out", "models", "User.ts")},
		{"source at root", filepath.Join("src", "models"), "out", filepath.Join("out", "User.ts")},
		{"source outside root", "lib", "out", filepath.Join("out", "User.ts")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPath(src, tt.root, tt.dir))
		})
	}
	assert.Equal(t, filepath.Join("out", "README.ts"), outputPath("README", "", "out"))
}

func TestConvertOutDirCollision(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"a", "b"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, sub), 0o755))
	}
	first := writeSource(t, filepath.Join(dir, "a"), "Models.cs", personCS)
	second := writeSource(t, filepath.Join(dir, "b"), "Models.cs", "public class Other { public int X { get; set; } }")
	outDir := filepath.Join(dir, "out")

	c := &Convert{Files: []string{first, second}, OutDir: outDir}
	err := c.run(discardLogger(), log.NewRaw(nil), nil, &bytes.Buffer{}, true)
	require.Error(t, err)
	assert.ErrorContains(t, err, first)
	assert.ErrorContains(t, err, second)
	assert.ErrorContains(t, err, filepath.Join(outDir, "Models.ts"))
	// nothing is written once a collision is detected
	assert.NoDirExists(t, outDir)
}
