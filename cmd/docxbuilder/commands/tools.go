package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/tools"
)

// ToolsCmd implements the 'tools' command.
type ToolsCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

type toolJSON struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []paramJSON `json:"params"`
}

type paramJSON struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

func (c *ToolsCmd) Run(g *Global, root *CLI) error {
	all := newRuntime(root.Settings(), false).surface()

	if c.Format == "json" {
		out := make([]toolJSON, 0, len(all))
		for _, t := range all {
			tj := toolJSON{Name: t.Name, Description: t.Description, Params: []paramJSON{}}
			for _, p := range t.Params {
				tj.Params = append(tj.Params, paramJSON{
					Name:        p.Name,
					Type:        string(p.Type),
					Required:    p.Required,
					Default:     p.Default,
					Description: p.Description,
				})
			}
			out = append(out, tj)
		}
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, t := range all {
		if _, err := fmt.Fprintf(g.Stdout, "%-42s %s\n", t.Name, firstLine(t.Description)); err != nil {
			return err
		}
		if root.Verbose {
			for _, p := range t.Params {
				if _, err := fmt.Fprintf(g.Stdout, "    %s\n", paramLine(p)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func paramLine(p tools.Param) string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	sb.WriteString(" (")
	sb.WriteString(string(p.Type))
	if p.Required {
		sb.WriteString(", required")
	}
	if p.Default != nil {
		fmt.Fprintf(&sb, ", default %v", p.Default)
	}
	sb.WriteString(")")
	if p.Description != "" {
		sb.WriteString(": ")
		sb.WriteString(p.Description)
	}
	return sb.String()
}
