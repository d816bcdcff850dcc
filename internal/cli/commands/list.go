package commands

import (
	"fmt"
	"strings"

	"github.com/estree/estreegen/internal/cli/output"
	"github.com/estree/estreegen/pkg/spec"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// DefinitionInfo is one row of the list command.
type DefinitionInfo struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Added      string   `json:"added,omitempty"`
	Bases      []string `json:"bases,omitempty"`
	Section    string   `json:"section,omitempty"`
	Properties int      `json:"properties"`
	Values     int      `json:"values,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schema definitions",
		Long: `List every definition present at the configured maximum version with its
kind, version marker, visible bases, documentation section and effective
property count (inherited properties included).

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List everything
  estreegen list

  # List what existed in ES2015
  estreegen list --max-version 2015

  # List as JSON
  estreegen list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	defs, err := cmdCtx.LoadDefinitions(cmd.Context())
	if err != nil {
		return err
	}

	infos, err := definitionInfos(defs, cmdCtx.Cfg.EffectiveMaxVersion())
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(infos)
	case output.ModeMarkdown:
		listTable(r, infos).RenderMarkdown()
	default:
		r.Println(r.Styles().Header1.Render(fmt.Sprintf("Definitions (%d total)", len(infos))))
		listTable(r, infos).Render()
	}
	return nil
}

// definitionInfos describes the definitions visible at maxVersion.
func definitionInfos(defs []spec.Definition, maxVersion int) ([]DefinitionInfo, error) {
	idx := spec.NewIndex(defs)
	visible := spec.Filter(defs, maxVersion)
	infos := make([]DefinitionInfo, 0, len(visible))

	for _, d := range visible {
		section, _ := d.Placement()
		info := DefinitionInfo{
			Name:    d.DefName(),
			Kind:    spec.Kind(d),
			Added:   d.DefAdded().String(),
			Section: strings.Join(section, " / "),
		}
		switch d := d.(type) {
		case *spec.Interface:
			info.Bases = d.VisibleBases(maxVersion)
			props, err := idx.Properties(d.Name, maxVersion)
			if err != nil {
				return nil, err
			}
			info.Properties = props.Len()
		case *spec.Enum:
			info.Values = len(d.Values)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func listTable(r *output.Renderer, infos []DefinitionInfo) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Kind", "Added", "Bases", "Section", "Members"})
	for _, info := range infos {
		size := info.Properties
		if info.Kind == "enum" {
			size = info.Values
		}
		t.AppendRow(table.Row{info.Name, info.Kind, info.Added, strings.Join(info.Bases, ", "), info.Section, size})
	}
	return t
}
