package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/copperline/xtasks/internal/domain"
	"github.com/copperline/xtasks/pkg/descriptor"
	"github.com/copperline/xtasks/pkg/reference"
)

// registerResources registers all xtasks MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. xtasks://reference - the embedded toolchain baseline
	s.AddResource(
		mcplib.NewResource(
			"xtasks://reference",
			"Toolchain Reference",
			mcplib.WithResourceDescription("The embedded Copperline toolchain baseline the project is compared against"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReferenceResource(),
	)

	// 2. xtasks://report - current drift report
	s.AddResource(
		mcplib.NewResource(
			"xtasks://report",
			"Drift Report",
			mcplib.WithResourceDescription("Current drift report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)

	// 3. xtasks://guide - rendered upgrade guide
	s.AddResource(
		mcplib.NewResource(
			"xtasks://guide",
			"Upgrade Guide",
			mcplib.WithResourceDescription("Markdown upgrade guide derived from the current drift"),
			mcplib.WithMIMEType("text/markdown"),
		),
		handleGuideResource(projectPath),
	)
}

// referenceView is the serialized shape of the embedded baseline.
type referenceView struct {
	Version       string             `json:"version"`
	OwnedPrefixes []string           `json:"owned_prefixes"`
	Entries       []descriptor.Entry `json:"entries"`
}

func handleReferenceResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		base, err := reference.Load()
		if err != nil {
			return nil, fmt.Errorf("load reference: %w", err)
		}

		view := referenceView{
			Version:       base.Version,
			OwnedPrefixes: base.OwnedPrefixes,
			Entries:       base.Ref.Entries(),
		}
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling reference: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "xtasks://reference",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		checks, _, _ := newServices()
		report, _, err := checks.Run(ctx, projectPath, false)
		if err != nil {
			return nil, fmt.Errorf("check failed: %w", err)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "xtasks://report",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleGuideResource(projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		_, plans, _ := newServices()
		plan, report, err := plans.Plan(ctx, projectPath, domain.PlanOptions{})
		if err != nil {
			return nil, fmt.Errorf("plan failed: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "xtasks://guide",
				MIMEType: "text/markdown",
				Text:     plans.RenderGuide(report, plan),
			},
		}, nil
	}
}
