package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server with all xtasks tools and resources
// registered. The projectPath is the root directory of the project to
// evaluate.
func NewServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"xtasks",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
