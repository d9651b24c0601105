package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"imgtag/internal/application"
	"imgtag/internal/application/commands"
)

// RegisterWriteTools adds the tag mutation tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(applyTagsTool(), applyTagsHandler(deps))
	s.AddTool(autoTagTool(), autoTagHandler(deps))
}

// --- apply_tags ---

func applyTagsTool() mcp.Tool {
	return mcp.NewTool("apply_tags",
		mcp.WithDescription("Add or remove tags on the images at a path. Changes are written into each file's XMP metadata."),
		mcp.WithString("path",
			mcp.Description("Image file or directory, absolute or relative to the collection root"),
			mcp.Required(),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags to apply"),
			mcp.Required(),
		),
		mcp.WithString("mode",
			mcp.Description("add (default) or remove"),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Descend into subdirectories"),
		),
	)
}

func applyTagsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		tags := strings.Split(req.GetString("tags", ""), ",")

		var mode commands.TagMode
		switch req.GetString("mode", "add") {
		case "add":
			mode = commands.TagModeAdd
		case "remove":
			mode = commands.TagModeRemove
		default:
			return toolError(fmt.Errorf("mode must be add or remove"))
		}

		cmd := commands.NewApplyTagsCommand(deps.Scanner, deps.Store, resolveUnderRoot(deps.Root, path), tags, mode)
		cmd.Recursive = req.GetBool("recursive", false)

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- auto_tag ---

func autoTagTool() mcp.Tool {
	return mcp.NewTool("auto_tag",
		mcp.WithDescription("Derive tags from each image's folder path under the collection root and reconcile them onto the file."),
		mcp.WithString("policy",
			mcp.Description("merge (default), overwrite, or add-only"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Report what would change without writing"),
		),
	)
}

func autoTagHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		policy, err := application.ParsePolicy(req.GetString("policy", "merge"))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewAutoTagCommand(deps.Scanner, deps.Store, deps.Root)
		cmd.Policy = policy
		cmd.DryRun = req.GetBool("dry_run", false)

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message + "\n" + result.Summary.Footer()), nil
	}
}
