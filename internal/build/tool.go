package build

import (
	"context"

	"git.home.luguber.info/inful/docxbuilder/internal/tools"
)

type buildBookArgs struct {
	ManifestPath string `json:"manifest_path" arg:"required" desc:"Path to the JSON build manifest"`
}

// BookTool exposes the orchestrator as the build_book operation. It is
// meant for the MCP surface and is never part of the orchestrator's own
// registry.
func BookTool(o *Orchestrator) tools.Tool {
	return tools.Define("build_book",
		"Run a build pipeline from a JSON manifest of {\"steps\": [{\"tool\", \"args\"}]} and return a JSON report of each step's result.",
		buildBookArgs{},
		func(ctx context.Context, a buildBookArgs) (string, error) {
			return o.Run(ctx, a.ManifestPath), nil
		})
}
