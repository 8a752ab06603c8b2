package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kamctl/kamctl/internal/api"
)

func (s *Server) registerExperimentTools() {
	s.mcpServer.AddTool(mcp.NewTool("kameleoon_list_experiments",
		mcp.WithDescription("List all experiments for the active client"),
	), s.handleListExperiments)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_get_experiment",
		mcp.WithDescription("Get an experiment by its numeric ID"),
		mcp.WithNumber("experimentId",
			mcp.Required(),
			mcp.Description("ID of the experiment"),
		),
	), s.handleGetExperiment)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_create_experiment",
		mcp.WithDescription("Create a new experiment on a site"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Experiment name"),
		),
		mcp.WithNumber("siteId",
			mcp.Required(),
			mcp.Description("ID of the site the experiment runs on"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Experiment type"),
			mcp.Enum("AI", "CLASSIC", "DEVELOPER", "FEATURE_FLAG", "MVT", "PROMPT", "SDK_HYBRID"),
		),
		mcp.WithString("baseURL",
			mcp.Required(),
			mcp.Description("Page URL the experiment targets"),
		),
		mcp.WithString("description",
			mcp.Description("Experiment description"),
		),
		mcp.WithString("status",
			mcp.Description("Initial status"),
			mcp.Enum("ACTIVE", "PAUSED", "STOPPED", "DEACTIVATED", "DRAFT"),
		),
		mcp.WithString("trafficAllocationMethod",
			mcp.Description("How traffic is split across variations"),
			mcp.Enum("CONTEXTUAL_BANDIT", "MANUAL", "MULTI_ARMED_BANDIT"),
		),
	), s.handleCreateExperiment)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_update_experiment_status",
		mcp.WithDescription("Change an experiment's status"),
		mcp.WithNumber("experimentId",
			mcp.Required(),
			mcp.Description("ID of the experiment"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("Target status"),
			mcp.Enum("ACTIVE", "PAUSED", "STOPPED", "DEACTIVATED"),
		),
	), s.handleUpdateExperimentStatus)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_restart_experiment",
		mcp.WithDescription("Restart a stopped experiment"),
		mcp.WithNumber("experimentId",
			mcp.Required(),
			mcp.Description("ID of the experiment to restart"),
		),
	), s.handleRestartExperiment)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_delete_experiment",
		mcp.WithDescription("Delete an experiment"),
		mcp.WithNumber("experimentId",
			mcp.Required(),
			mcp.Description("ID of the experiment to delete"),
		),
	), s.handleDeleteExperiment)
}

func (s *Server) handleListExperiments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	experiments, err := s.gateway.ListExperiments(ctx, token)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(experiments), nil
}

func (s *Server) handleGetExperiment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	experimentID, ok := intArg(args, "experimentId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'experimentId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	experiment, err := s.gateway.GetExperiment(ctx, token, experimentID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(experiment), nil
}

func (s *Server) handleCreateExperiment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	name, ok := stringArg(args, "name")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'name' argument"), nil
	}
	siteID, ok := intArg(args, "siteId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'siteId' argument"), nil
	}
	expType, ok := stringArg(args, "type")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'type' argument"), nil
	}
	baseURL, ok := stringArg(args, "baseURL")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'baseURL' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	experiment, err := s.gateway.CreateExperiment(ctx, token, api.CreateExperimentRequest{
		Name:                    name,
		SiteID:                  siteID,
		Type:                    expType,
		BaseURL:                 baseURL,
		Description:             optStringArg(args, "description"),
		Status:                  optStringArg(args, "status"),
		TrafficAllocationMethod: optStringArg(args, "trafficAllocationMethod"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(experiment), nil
}

func (s *Server) handleUpdateExperimentStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	experimentID, ok := intArg(args, "experimentId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'experimentId' argument"), nil
	}
	status, ok := stringArg(args, "status")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'status' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	experiment, err := s.gateway.UpdateExperimentStatus(ctx, token, experimentID, status)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(experiment), nil
}

func (s *Server) handleRestartExperiment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	experimentID, ok := intArg(args, "experimentId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'experimentId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.gateway.RestartExperiment(ctx, token, experimentID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Restarted experiment %d", experimentID)), nil
}

func (s *Server) handleDeleteExperiment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	experimentID, ok := intArg(args, "experimentId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'experimentId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.gateway.DeleteExperiment(ctx, token, experimentID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted experiment %d", experimentID)), nil
}
