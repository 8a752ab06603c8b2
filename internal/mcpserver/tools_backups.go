package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kamctl/kamctl/internal/workflow"
)

const scriptPreviewLen = 100

func (s *Server) registerBackupTools() {
	s.mcpServer.AddTool(mcp.NewTool("kameleoon_list_tracking_script_backups",
		mcp.WithDescription("List saved tracking-script backups, most recent first"),
		mcp.WithNumber("siteId",
			mcp.Description("Only list backups for this site"),
		),
	), s.handleListBackups)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_get_tracking_script_backup",
		mcp.WithDescription("Get one tracking-script backup including its full script"),
		mcp.WithNumber("siteId",
			mcp.Required(),
			mcp.Description("ID of the backed-up site"),
		),
		mcp.WithString("savedAt",
			mcp.Required(),
			mcp.Description("Exact savedAt timestamp of the backup"),
		),
	), s.handleGetBackup)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_restore_tracking_script",
		mcp.WithDescription("Restore a site's tracking script from a backup. The live script is snapshotted first so the restore can be undone"),
		mcp.WithNumber("siteId",
			mcp.Required(),
			mcp.Description("ID of the site to restore"),
		),
		mcp.WithString("savedAt",
			mcp.Required(),
			mcp.Description("savedAt timestamp of the backup to restore"),
		),
	), s.handleRestoreBackup)
}

func (s *Server) handleListBackups(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var siteID int
	if args, ok := argsMap(request); ok {
		siteID = optIntArg(args, "siteId")
	}

	backups, err := s.backups.List(siteID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Summaries only; the full script can be large and is fetched per backup.
	summaries := make([]map[string]interface{}, 0, len(backups))
	for _, b := range backups {
		preview := b.TrackingScript
		if len(preview) > scriptPreviewLen {
			preview = preview[:scriptPreviewLen] + "..."
		}
		summaries = append(summaries, map[string]interface{}{
			"siteId":        b.SiteID,
			"siteCode":      b.SiteCode,
			"siteName":      b.SiteName,
			"savedAt":       b.SavedAt,
			"triggeredBy":   b.TriggeredBy,
			"scriptPreview": preview,
		})
	}
	return jsonResult(summaries), nil
}

func (s *Server) handleGetBackup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	siteID, ok := intArg(args, "siteId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'siteId' argument"), nil
	}
	savedAt, ok := stringArg(args, "savedAt")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'savedAt' argument"), nil
	}

	b, err := s.backups.Get(siteID, savedAt)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(b), nil
}

func (s *Server) handleRestoreBackup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	siteID, ok := intArg(args, "siteId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'siteId' argument"), nil
	}
	savedAt, ok := stringArg(args, "savedAt")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'savedAt' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := workflow.RestoreTrackingScript(ctx, s.gateway, s.backups, token, siteID, savedAt)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("restore failed: %v", err)), nil
	}
	return jsonResult(result), nil
}
