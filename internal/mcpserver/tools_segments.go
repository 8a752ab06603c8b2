package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kamctl/kamctl/internal/workflow"
)

func (s *Server) registerSegmentTools() {
	s.mcpServer.AddTool(mcp.NewTool("kameleoon_get_segment",
		mcp.WithDescription("Get a segment by its numeric ID"),
		mcp.WithNumber("segmentId",
			mcp.Required(),
			mcp.Description("ID of the segment"),
		),
	), s.handleGetSegment)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_duplicate_segment",
		mcp.WithDescription("Copy a segment to the sites named by code. Reports per-site successes and failures"),
		mcp.WithNumber("segmentId",
			mcp.Required(),
			mcp.Description("ID of the segment to duplicate"),
		),
		mcp.WithArray("targetSiteCodes",
			mcp.Required(),
			mcp.Description("Codes of the sites to copy the segment onto"),
			mcp.Items(map[string]interface{}{"type": "string"}),
		),
	), s.handleDuplicateSegment)
}

func (s *Server) handleGetSegment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	segmentID, ok := intArg(args, "segmentId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'segmentId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	segment, err := s.gateway.GetSegment(ctx, token, segmentID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(segment), nil
}

func (s *Server) handleDuplicateSegment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	segmentID, ok := intArg(args, "segmentId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'segmentId' argument"), nil
	}
	siteCodes, ok := stringSliceArg(args, "targetSiteCodes")
	if !ok || len(siteCodes) == 0 {
		return mcp.NewToolResultError("missing or invalid 'targetSiteCodes' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := workflow.DuplicateSegment(ctx, s.gateway, token, segmentID, siteCodes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result), nil
}
