package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/copperline/xtasks/internal/adapters/outbound/config"
	"github.com/copperline/xtasks/internal/adapters/outbound/gitinfo"
	"github.com/copperline/xtasks/internal/adapters/outbound/history"
	"github.com/copperline/xtasks/internal/adapters/outbound/manifest"
	"github.com/copperline/xtasks/internal/adapters/outbound/pinstore"
	"github.com/copperline/xtasks/internal/application"
	"github.com/copperline/xtasks/internal/domain"
)

// registerTools registers all xtasks MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. xtasks_check
	s.AddTool(
		mcplib.NewTool("xtasks_check",
			mcplib.WithDescription("Compare the project manifest against the Copperline toolchain reference and return the full drift report as JSON"),
			mcplib.WithBoolean("save", mcplib.Description("Append the result to the project's check history")),
		),
		handleCheck(projectPath),
	)

	// 2. xtasks_plan
	s.AddTool(
		mcplib.NewTool("xtasks_plan",
			mcplib.WithDescription("Derive the upgrade plan for the project: automatic manifest edits plus manual instructions"),
			mcplib.WithBoolean("prune", mcplib.Description("Plan drop actions for requires the reference does not list")),
		),
		handlePlan(projectPath),
	)

	// 3. xtasks_apply
	s.AddTool(
		mcplib.NewTool("xtasks_apply",
			mcplib.WithDescription("Rewrite go.mod to match the toolchain reference and return what was changed"),
			mcplib.WithBoolean("dry_run", mcplib.Description("Render the resulting manifest without writing it")),
			mcplib.WithBoolean("prune", mcplib.Description("Drop requires the reference does not list")),
		),
		handleApply(projectPath),
	)

	// 4. xtasks_sync_version
	s.AddTool(
		mcplib.NewTool("xtasks_sync_version",
			mcplib.WithDescription("Sync the VERSION file with the anchor module's pinned version"),
			mcplib.WithBoolean("dry_run", mcplib.Description("Resolve the version without writing the file")),
			mcplib.WithBoolean("strip_pre", mcplib.Description("Strip the prerelease tag")),
			mcplib.WithString("build", mcplib.Description("Build metadata to stamp onto the version")),
		),
		handleSyncVersion(projectPath),
	)

	// 5. xtasks_guide
	s.AddTool(
		mcplib.NewTool("xtasks_guide",
			mcplib.WithDescription("Render a Markdown upgrade guide for the project: drift table, automatic fixes, and manual follow-ups"),
		),
		handleGuide(projectPath),
	)

	// 6. xtasks_history
	s.AddTool(
		mcplib.NewTool("xtasks_history",
			mcplib.WithDescription("Return the project's saved check history as JSON"),
		),
		handleHistory(projectPath),
	)
}

// newServices creates the standard set of outbound adapters and services.
func newServices() (*application.CheckService, *application.PlanService, *application.SyncService) {
	configs := config.NewLoader(nil)
	manifests := manifest.NewSource()
	checks := application.NewCheckService(configs, manifests, gitinfo.New(), history.New(), pinstore.New())
	plans := application.NewPlanService(checks, manifest.NewEditor(), pinstore.New())
	syncs := application.NewSyncService(configs, manifests, manifest.NewVersionFile())
	return checks, plans, syncs
}

func handleCheck(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		save, _ := request.GetArguments()["save"].(bool)

		checks, _, _ := newServices()
		report, _, err := checks.Run(ctx, projectPath, save)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handlePlan(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		prune, _ := request.GetArguments()["prune"].(bool)

		_, plans, _ := newServices()
		plan, _, err := plans.Plan(ctx, projectPath, domain.PlanOptions{Prune: prune})
		if err != nil {
			return errorResult(fmt.Sprintf("plan failed: %v", err)), nil
		}
		return jsonResult(plan)
	}
}

func handleApply(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		dryRun, _ := args["dry_run"].(bool)
		prune, _ := args["prune"].(bool)

		_, plans, _ := newServices()
		result, err := plans.Apply(ctx, projectPath,
			domain.PlanOptions{Prune: prune},
			domain.ApplyOptions{DryRun: dryRun},
		)
		if err != nil {
			return errorResult(fmt.Sprintf("apply failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleSyncVersion(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		dryRun, _ := args["dry_run"].(bool)
		stripPre, _ := args["strip_pre"].(bool)
		build, _ := args["build"].(string)

		_, _, syncs := newServices()
		result, err := syncs.Run(ctx, projectPath, domain.SyncOptions{
			Build:    build,
			StripPre: stripPre,
			DryRun:   dryRun,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("sync-version failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleGuide(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		_, plans, _ := newServices()
		plan, report, err := plans.Plan(ctx, projectPath, domain.PlanOptions{})
		if err != nil {
			return errorResult(fmt.Sprintf("guide failed: %v", err)), nil
		}
		return textResult(plans.RenderGuide(report, plan)), nil
	}
}

func handleHistory(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		checks, _, _ := newServices()
		entries, _, err := checks.History(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("history failed: %v", err)), nil
		}
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		return jsonResult(entries)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
