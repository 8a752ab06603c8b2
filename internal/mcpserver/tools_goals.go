package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kamctl/kamctl/internal/api"
	"github.com/kamctl/kamctl/internal/workflow"
)

func (s *Server) registerGoalTools() {
	s.mcpServer.AddTool(mcp.NewTool("kameleoon_list_goals",
		mcp.WithDescription("List all goals for the active client"),
	), s.handleListGoals)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_get_goal",
		mcp.WithDescription("Get a goal by its numeric ID"),
		mcp.WithNumber("goalId",
			mcp.Required(),
			mcp.Description("ID of the goal"),
		),
	), s.handleGetGoal)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_create_goal",
		mcp.WithDescription("Create a new goal on a site"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Goal name"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Goal type"),
			mcp.Enum("CLICK", "CUSTOM", "SCROLL", "PAGE_VIEWS", "URL", "TIME_SPENT", "RETENTION_RATE", "WAREHOUSE", "RATIO_METRICS"),
		),
		mcp.WithNumber("siteId",
			mcp.Required(),
			mcp.Description("ID of the site the goal belongs to"),
		),
		mcp.WithString("description",
			mcp.Description("Goal description"),
		),
		mcp.WithBoolean("hasMultipleConversions",
			mcp.Description("Whether the goal may convert more than once per visit"),
		),
	), s.handleCreateGoal)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_delete_goal",
		mcp.WithDescription("Delete a goal"),
		mcp.WithNumber("goalId",
			mcp.Required(),
			mcp.Description("ID of the goal to delete"),
		),
	), s.handleDeleteGoal)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_duplicate_goal_to_all_sites",
		mcp.WithDescription("Copy a goal to every other site of the active client. Reports per-site successes and failures"),
		mcp.WithNumber("goalId",
			mcp.Required(),
			mcp.Description("ID of the goal to duplicate"),
		),
	), s.handleDuplicateGoal)
}

func (s *Server) handleListGoals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	goals, err := s.gateway.ListGoals(ctx, token)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(goals), nil
}

func (s *Server) handleGetGoal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	goalID, ok := intArg(args, "goalId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'goalId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	goal, err := s.gateway.GetGoal(ctx, token, goalID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(goal), nil
}

func (s *Server) handleCreateGoal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	name, ok := stringArg(args, "name")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'name' argument"), nil
	}
	goalType, ok := stringArg(args, "type")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'type' argument"), nil
	}
	siteID, ok := intArg(args, "siteId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'siteId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	goal, err := s.gateway.CreateGoal(ctx, token, api.CreateGoalRequest{
		Name:                   name,
		Type:                   goalType,
		SiteID:                 siteID,
		Description:            optStringArg(args, "description"),
		HasMultipleConversions: optBoolArg(args, "hasMultipleConversions"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(goal), nil
}

func (s *Server) handleDeleteGoal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	goalID, ok := intArg(args, "goalId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'goalId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.gateway.DeleteGoal(ctx, token, goalID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted goal %d", goalID)), nil
}

func (s *Server) handleDuplicateGoal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	goalID, ok := intArg(args, "goalId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'goalId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := workflow.DuplicateGoalToAllSites(ctx, s.gateway, token, goalID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result), nil
}
