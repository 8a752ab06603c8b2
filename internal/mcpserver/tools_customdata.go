package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kamctl/kamctl/internal/api"
)

func (s *Server) registerCustomDataTools() {
	s.mcpServer.AddTool(mcp.NewTool("kameleoon_list_custom_data",
		mcp.WithDescription("List all custom data definitions for the active client"),
	), s.handleListCustomData)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_get_custom_data",
		mcp.WithDescription("Get a custom data definition by its numeric ID"),
		mcp.WithNumber("customDataId",
			mcp.Required(),
			mcp.Description("ID of the custom data"),
		),
	), s.handleGetCustomData)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_create_custom_data",
		mcp.WithDescription("Create a new custom data definition on a site"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Custom data name"),
		),
		mcp.WithString("method",
			mcp.Required(),
			mcp.Description("How the value is collected"),
			mcp.Enum("ADOBE_ANALYTICS", "CLIENT", "CUSTOM_CODE", "GTM", "SDK", "TC", "TEALIUM"),
		),
		mcp.WithNumber("siteId",
			mcp.Required(),
			mcp.Description("ID of the site the custom data belongs to"),
		),
		mcp.WithString("type",
			mcp.Description("Value cardinality"),
			mcp.Enum("UNIQUE", "LIST", "COUNT_LIST"),
		),
		mcp.WithString("format",
			mcp.Description("Value format"),
			mcp.Enum("BOOLEAN", "NUMBER", "STRING"),
		),
		mcp.WithString("description",
			mcp.Description("Custom data description"),
		),
		mcp.WithBoolean("isLocalOnly",
			mcp.Description("Keep the value on the device, never sent to Kameleoon servers"),
		),
		mcp.WithString("gtmVariableName",
			mcp.Description("GTM variable name (method GTM)"),
		),
		mcp.WithString("adobeAnalyticsVariableName",
			mcp.Description("Adobe Analytics variable name (method ADOBE_ANALYTICS)"),
		),
		mcp.WithString("customEvalCode",
			mcp.Description("JavaScript snippet evaluating the value (method CUSTOM_CODE)"),
		),
	), s.handleCreateCustomData)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_delete_custom_data",
		mcp.WithDescription("Delete a custom data definition"),
		mcp.WithNumber("customDataId",
			mcp.Required(),
			mcp.Description("ID of the custom data to delete"),
		),
	), s.handleDeleteCustomData)
}

func (s *Server) handleListCustomData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	customData, err := s.gateway.ListCustomData(ctx, token)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(customData), nil
}

func (s *Server) handleGetCustomData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	id, ok := intArg(args, "customDataId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'customDataId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	customData, err := s.gateway.GetCustomData(ctx, token, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(customData), nil
}

func (s *Server) handleCreateCustomData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	name, ok := stringArg(args, "name")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'name' argument"), nil
	}
	method, ok := stringArg(args, "method")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'method' argument"), nil
	}
	siteID, ok := intArg(args, "siteId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'siteId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	customData, err := s.gateway.CreateCustomData(ctx, token, api.CreateCustomDataRequest{
		Name:                       name,
		Method:                     method,
		SiteID:                     siteID,
		Type:                       optStringArg(args, "type"),
		Format:                     optStringArg(args, "format"),
		Description:                optStringArg(args, "description"),
		IsLocalOnly:                optBoolArg(args, "isLocalOnly"),
		GTMVariableName:            optStringArg(args, "gtmVariableName"),
		AdobeAnalyticsVariableName: optStringArg(args, "adobeAnalyticsVariableName"),
		CustomEvalCode:             optStringArg(args, "customEvalCode"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(customData), nil
}

func (s *Server) handleDeleteCustomData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	id, ok := intArg(args, "customDataId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'customDataId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.gateway.DeleteCustomData(ctx, token, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted custom data %d", id)), nil
}
