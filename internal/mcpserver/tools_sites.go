package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kamctl/kamctl/internal/api"
	"github.com/kamctl/kamctl/internal/workflow"
)

func (s *Server) registerSiteTools() {
	s.mcpServer.AddTool(mcp.NewTool("kameleoon_list_sites",
		mcp.WithDescription("List all sites for the active client"),
	), s.handleListSites)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_get_site",
		mcp.WithDescription("Get a site by its numeric ID"),
		mcp.WithNumber("siteId",
			mcp.Required(),
			mcp.Description("ID of the site"),
		),
	), s.handleGetSite)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_get_site_by_code",
		mcp.WithDescription("Get a site by its code"),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Site code"),
		),
	), s.handleGetSiteByCode)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_create_site",
		mcp.WithDescription("Create a new site"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Site name"),
		),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Site URL"),
		),
		mcp.WithString("type",
			mcp.Description("Integration type"),
			mcp.Enum("SITE", "SITE_JS", "SITE_SDK", "APPLICATION"),
		),
		mcp.WithString("siteType",
			mcp.Description("Business category of the site"),
			mcp.Enum("ECOMMERCE", "MEDIA", "OTHER"),
		),
	), s.handleCreateSite)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_update_site",
		mcp.WithDescription("Update a site's name or tracking script. The current tracking script is backed up first when it is being replaced"),
		mcp.WithNumber("siteId",
			mcp.Required(),
			mcp.Description("ID of the site to update"),
		),
		mcp.WithString("name",
			mcp.Description("New site name"),
		),
		mcp.WithString("trackingScript",
			mcp.Description("New tracking script"),
		),
	), s.handleUpdateSite)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_update_tracking_script",
		mcp.WithDescription("Replace a site's tracking script. The current script is backed up first"),
		mcp.WithNumber("siteId",
			mcp.Required(),
			mcp.Description("ID of the site"),
		),
		mcp.WithString("trackingScript",
			mcp.Required(),
			mcp.Description("New tracking script content"),
		),
	), s.handleUpdateTrackingScript)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_delete_site",
		mcp.WithDescription("Delete a site"),
		mcp.WithNumber("siteId",
			mcp.Required(),
			mcp.Description("ID of the site to delete"),
		),
	), s.handleDeleteSite)
}

func (s *Server) handleListSites(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sites, err := s.gateway.ListSites(ctx, token)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sites), nil
}

func (s *Server) handleGetSite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	siteID, ok := intArg(args, "siteId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'siteId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	site, err := s.gateway.GetSite(ctx, token, siteID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(site), nil
}

func (s *Server) handleGetSiteByCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	code, ok := stringArg(args, "code")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'code' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	site, err := s.gateway.GetSiteByCode(ctx, token, code)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(site), nil
}

func (s *Server) handleCreateSite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	name, ok := stringArg(args, "name")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'name' argument"), nil
	}
	url, ok := stringArg(args, "url")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'url' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	site, err := s.gateway.CreateSite(ctx, token, api.CreateSiteRequest{
		Name:     name,
		URL:      url,
		Type:     optStringArg(args, "type"),
		SiteType: optStringArg(args, "siteType"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(site), nil
}

func (s *Server) handleUpdateSite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	siteID, ok := intArg(args, "siteId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'siteId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	script := optStringArg(args, "trackingScript")
	var warning string
	if script != "" {
		_, warning = workflow.SnapshotBeforeUpdate(ctx, s.gateway, s.backups, token, siteID, "update-site")
	}

	site, err := s.gateway.PatchSite(ctx, token, siteID, api.UpdateSiteRequest{
		Name:           optStringArg(args, "name"),
		TrackingScript: script,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{"site": site}
	if warning != "" {
		result["warning"] = warning
	}
	return jsonResult(result), nil
}

func (s *Server) handleUpdateTrackingScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	siteID, ok := intArg(args, "siteId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'siteId' argument"), nil
	}
	script, ok := args["trackingScript"].(string)
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'trackingScript' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	savedAt, warning := workflow.SnapshotBeforeUpdate(ctx, s.gateway, s.backups, token, siteID, "update-tracking-script")

	site, err := s.gateway.UpdateTrackingScript(ctx, token, siteID, script)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{"site": site}
	if savedAt != "" {
		result["backupSavedAt"] = savedAt
	}
	if warning != "" {
		result["warning"] = warning
	}
	return jsonResult(result), nil
}

func (s *Server) handleDeleteSite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	siteID, ok := intArg(args, "siteId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'siteId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.gateway.DeleteSite(ctx, token, siteID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted site %d", siteID)), nil
}
