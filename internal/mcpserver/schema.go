package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"

	"git.home.luguber.info/inful/docxbuilder/internal/tools"
)

// Definition converts a catalog entry into an MCP tool with a JSON schema
// derived from its parameters.
func Definition(t tools.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, p := range t.Params {
		opts = append(opts, property(p))
	}
	return mcp.NewTool(t.Name, opts...)
}

func property(p tools.Param) mcp.ToolOption {
	var popts []mcp.PropertyOption
	if p.Description != "" {
		popts = append(popts, mcp.Description(p.Description))
	}
	if p.Required {
		popts = append(popts, mcp.Required())
	}
	if p.Default != nil {
		popts = append(popts, defaultValue(p.Default))
	}

	switch p.Type {
	case tools.TypeInteger:
		return mcp.WithNumber(p.Name, append(popts, schemaType("integer"))...)
	case tools.TypeNumber:
		return mcp.WithNumber(p.Name, popts...)
	case tools.TypeBoolean:
		return mcp.WithBoolean(p.Name, popts...)
	case tools.TypeArray:
		if p.Items != nil {
			popts = append(popts, mcp.Items(p.Items))
		}
		return mcp.WithArray(p.Name, popts...)
	case tools.TypeObject:
		return mcp.WithObject(p.Name, popts...)
	default:
		return mcp.WithString(p.Name, popts...)
	}
}

func defaultValue(v any) mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["default"] = v
	}
}

func schemaType(t string) mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = t
	}
}
