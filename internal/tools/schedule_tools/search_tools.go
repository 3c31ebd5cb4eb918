package schedule_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/clinicdesk/clinicdesk/internal/server"
	"github.com/clinicdesk/clinicdesk/internal/tools/common"
)

// RegisterSearchTools registers the patient search tool with the MCP server
func RegisterSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchTool := mcp.NewTool("schedule_search_by_patient",
		mcp.WithDescription("Find upcoming appointments for a patient by their email address"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("patientEmail",
			mcp.Required(),
			mcp.Description("Email address of the patient to search for"),
		),
		mcp.WithString("from",
			mcp.Description("Earliest start time to include (e.g. '2026-09-07T00:00'). Defaults to now."),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandler("schedule_search_by_patient", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchByPatient(ctx, request, sc)
		}))

	return nil
}

func handleSearchByPatient(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	email, ok := args["patientEmail"].(string)
	if !ok || strings.TrimSpace(email) == "" {
		return mcp.NewToolResultError("patientEmail is required"), nil
	}

	from := sc.Now()
	if fromStr, ok := args["from"].(string); ok && fromStr != "" {
		parsed, err := parseClinicTime(fromStr, sc.Config().Location())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid from time: %v", err)), nil
		}
		from = parsed
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := client.SearchEventsByAttendee(ctx, email, from)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search appointments: %v", err)), nil
	}

	if len(events) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No upcoming appointments found for %s.", email)), nil
	}
	return mcp.NewToolResultText(formatEvents(events, sc.Config().Location())), nil
}
