package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/build"
	derrors "git.home.luguber.info/inful/docxbuilder/internal/errors"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	Tool string `arg:"" help:"Tool name, as listed by 'docxbuilder tools'"`
	Args string `short:"a" help:"Tool arguments as a JSON object" default:"{}"`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	rt := newRuntime(root.Settings(), false)
	registry := build.NewRegistry(rt.surface()...)

	tool, ok := registry.Lookup(r.Tool)
	if !ok {
		return derrors.ValidationFailed("tool", "Unknown tool: "+r.Tool).
			WithContext("known", strings.Join(registry.Names(), ", "))
	}

	args := map[string]any{}
	if strings.TrimSpace(r.Args) != "" {
		if err := json.Unmarshal([]byte(r.Args), &args); err != nil {
			return derrors.Wrap(err, derrors.CategoryValidation, derrors.SeverityError, "--args must be a JSON object")
		}
	}
	if args == nil {
		args = map[string]any{}
	}

	out, err := tool.Handler(context.Background(), args)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.Stdout, out)
	return err
}
