package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kamctl/kamctl/internal/api"
)

func (s *Server) registerAccountTools() {
	s.mcpServer.AddTool(mcp.NewTool("kameleoon_list_accounts",
		mcp.WithDescription("List the accounts visible to the active client"),
	), s.handleListAccounts)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_get_account",
		mcp.WithDescription("Get an account by its numeric ID"),
		mcp.WithNumber("accountId",
			mcp.Required(),
			mcp.Description("ID of the account"),
		),
	), s.handleGetAccount)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_create_account",
		mcp.WithDescription("Create a new user account"),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Account email address"),
		),
		mcp.WithString("firstName",
			mcp.Required(),
			mcp.Description("First name"),
		),
		mcp.WithString("lastName",
			mcp.Required(),
			mcp.Description("Last name"),
		),
		mcp.WithString("password",
			mcp.Description("Initial password"),
		),
		mcp.WithString("passwordConfirm",
			mcp.Description("Password confirmation, must match password"),
		),
		mcp.WithString("preferredLocale",
			mcp.Description("Interface language"),
			mcp.Enum("fr", "en", "de"),
		),
	), s.handleCreateAccount)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_delete_account",
		mcp.WithDescription("Delete an account"),
		mcp.WithNumber("accountId",
			mcp.Required(),
			mcp.Description("ID of the account to delete"),
		),
	), s.handleDeleteAccount)
}

func (s *Server) handleListAccounts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	accounts, err := s.gateway.ListAccounts(ctx, token)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(accounts), nil
}

func (s *Server) handleGetAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	accountID, ok := intArg(args, "accountId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'accountId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	account, err := s.gateway.GetAccount(ctx, token, accountID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(account), nil
}

func (s *Server) handleCreateAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	email, ok := stringArg(args, "email")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'email' argument"), nil
	}
	firstName, ok := stringArg(args, "firstName")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'firstName' argument"), nil
	}
	lastName, ok := stringArg(args, "lastName")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'lastName' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	account, err := s.gateway.CreateAccount(ctx, token, api.CreateAccountRequest{
		Email:           email,
		FirstName:       firstName,
		LastName:        lastName,
		Password:        optStringArg(args, "password"),
		PasswordConfirm: optStringArg(args, "passwordConfirm"),
		PreferredLocale: optStringArg(args, "preferredLocale"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(account), nil
}

func (s *Server) handleDeleteAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	accountID, ok := intArg(args, "accountId")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'accountId' argument"), nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.gateway.DeleteAccount(ctx, token, accountID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted account %d", accountID)), nil
}
