// Package mcp exposes the collection to MCP clients over stdio. Read
// tools query embedded tags and the derived index; write tools go
// through the same application commands as the CLI.
package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"imgtag/internal/application"
	"imgtag/internal/application/commands"
	"imgtag/internal/ports"
)

// Deps bundles the adapters every tool handler draws on.
type Deps struct {
	Scanner  ports.Scanner
	Store    ports.TagStore
	NewIndex func() ports.TagIndex
	Root     string
}

// RegisterReadTools adds all read-only collection tools to the MCP
// server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(readTagsTool(), readTagsHandler(deps))
	s.AddTool(listTagsTool(), listTagsHandler(deps))
	s.AddTool(findByTagTool(), findByTagHandler(deps))
}

// --- read_tags ---

func readTagsTool() mcp.Tool {
	return mcp.NewTool("read_tags",
		mcp.WithDescription("Read the embedded tag set of the images at a path. Directories list each contained image with its tags."),
		mcp.WithString("path",
			mcp.Description("Image file or directory, absolute or relative to the collection root"),
			mcp.Required(),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Descend into subdirectories"),
		),
	)
}

func readTagsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		cmd := commands.NewReadTagsCommand(deps.Scanner, deps.Store, resolveUnderRoot(deps.Root, path))
		cmd.Recursive = req.GetBool("recursive", false)

		entries, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return formatEntries(entries, func(e commands.FileTags) string {
			if e.Err != nil {
				return fmt.Sprintf("%s: error: %v", e.RelativePath, e.Err)
			}
			if e.Tags.IsEmpty() {
				return fmt.Sprintf("%s: (no tags)", e.RelativePath)
			}
			return fmt.Sprintf("%s: %s", e.RelativePath, e.Tags.Joined())
		})
	}
}

// --- list_tags ---

func listTagsTool() mcp.Tool {
	return mcp.NewTool("list_tags",
		mcp.WithDescription("List every distinct tag in the collection with the number of images carrying it."),
	)
}

func listTagsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListTagsCommand(deps.NewIndex(), deps.Root)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return formatEntries(result.Counts, func(tc application.TagCount) string {
			return fmt.Sprintf("%s (%d)", tc.Tag, tc.Count)
		})
	}
}

// --- find_by_tag ---

func findByTagTool() mcp.Tool {
	return mcp.NewTool("find_by_tag",
		mcp.WithDescription("Find every image carrying a tag. Matching is exact on the normalized tag."),
		mcp.WithString("tag",
			mcp.Description("Tag to search for (e.g. ireland or ireland/coast)"),
			mcp.Required(),
		),
	)
}

func findByTagHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tag := req.GetString("tag", "")
		if tag == "" {
			return toolError(fmt.Errorf("tag is required"))
		}

		cmd := commands.NewSearchCommand(deps.NewIndex(), deps.Root, tag)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return formatEntries(result.Paths, func(p string) string { return p })
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntries[T any](entries []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entries) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// resolveUnderRoot joins relative paths onto the collection root so
// clients can speak in the same paths the CLI prints.
func resolveUnderRoot(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
