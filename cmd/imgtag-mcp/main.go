package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"imgtag/internal/adapters/exiftool"
	"imgtag/internal/adapters/filesystem"
	mcpadapter "imgtag/internal/adapters/mcp"
	"imgtag/internal/adapters/sqlite"
	"imgtag/internal/config"
	"imgtag/internal/ports"
)

func main() {
	rootFlag := flag.String("root", config.RootPath(), "collection root directory")
	flag.Parse()

	store, err := exiftool.NewStore(config.ExiftoolPath())
	if err != nil {
		log.Fatalf("imgtag-mcp: %v", err)
	}
	defer store.Close()

	scanner := filesystem.NewScanner(config.SentinelDir)
	deps := mcpadapter.Deps{
		Scanner: scanner,
		Store:   store,
		NewIndex: func() ports.TagIndex {
			return sqlite.NewIndex(store, scanner)
		},
		Root: filesystem.ExpandHome(*rootFlag),
	}

	mcpServer := server.NewMCPServer(
		"imgtag-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("imgtag-mcp: %v", err)
	}
}
