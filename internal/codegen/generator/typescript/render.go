package typescript

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Alia5/cs2ts/internal/codegen/common"
	"github.com/Alia5/cs2ts/internal/codegen/meta"
)

const enumTemplateTS = `export enum {{.Name}} {
{{- range .Values}}
  {{.}} = "{{.}}",
{{- else}}
{{ end}}
}`

const interfaceTemplateTS = `export interface {{.Name}}{{if .TypeParams}}<{{join .TypeParams ", "}}>{{end}} {
{{- range .Members}}
  {{.Name}}{{if .Optional}}?{{end}}: {{.Type}};
{{- end}}
}`

var (
	funcMap = template.FuncMap{"join": strings.Join}

	enumTmpl      = template.Must(template.New("enum").Parse(enumTemplateTS))
	interfaceTmpl = template.Must(template.New("interface").Funcs(funcMap).Parse(interfaceTemplateTS))
)

type memberView struct {
	Name     string
	Optional bool
	Type     string
}

type interfaceView struct {
	Name       string
	TypeParams []string
	Members    []memberView
}

// RenderEnum renders an enum whose members are string literals of their own
// names.
func RenderEnum(e meta.ParsedEnum) (string, error) {
	var b strings.Builder
	if err := enumTmpl.Execute(&b, e); err != nil {
		return "", fmt.Errorf("render enum %s: %w", e.Name, err)
	}
	return b.String(), nil
}

// RenderInterface renders a class as an interface with camelCased members.
// Nullable properties become optional members.
func (tm *TypeMapper) RenderInterface(c meta.ParsedClass) (string, error) {
	view := interfaceView{Name: c.Name, TypeParams: c.TypeParams}
	for _, p := range c.Properties {
		view.Members = append(view.Members, memberView{
			Name:     common.ToCamelCase(p.Name),
			Optional: p.Nullable,
			Type:     tm.Map(p.Type),
		})
	}
	var b strings.Builder
	if err := interfaceTmpl.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render interface %s: %w", c.Name, err)
	}
	return b.String(), nil
}

// Render emits all enums, then all interfaces, each group in source order,
// separated by a blank line.
func (tm *TypeMapper) Render(md *meta.Model) (string, error) {
	blocks := make([]string, 0, len(md.Enums)+len(md.Classes))
	for _, e := range md.Enums {
		block, err := RenderEnum(e)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}
	for _, c := range md.Classes {
		block, err := tm.RenderInterface(c)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n"), nil
}
