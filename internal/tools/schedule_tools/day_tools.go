package schedule_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/clinicdesk/clinicdesk/internal/server"
	"github.com/clinicdesk/clinicdesk/internal/tools/common"
)

// RegisterDayTools registers the today/week listing tools with the MCP server
func RegisterDayTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTodayTool := mcp.NewTool("schedule_list_today",
		mcp.WithDescription("List all appointments on the clinic calendar for today"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
	)

	s.AddTool(listTodayTool, common.InstrumentedToolHandler("schedule_list_today", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListToday(ctx, request, sc)
		}))

	listWeekTool := mcp.NewTool("schedule_list_week",
		mcp.WithDescription("List all appointments for the remaining business week (Monday to Friday). On a weekend this covers the upcoming week."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
	)

	s.AddTool(listWeekTool, common.InstrumentedToolHandler("schedule_list_week", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListWeek(ctx, request, sc)
		}))

	return nil
}

func handleListToday(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	window := sc.Hours().TodayWindow(sc.Now())
	events, err := client.ListEvents(ctx, window.Start, window.End)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list today's appointments: %v", err)), nil
	}

	return mcp.NewToolResultText(formatEvents(events, sc.Config().Location())), nil
}

func handleListWeek(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	window := sc.Hours().WeekWindow(sc.Now())
	events, err := client.ListEvents(ctx, window.Start, window.End)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list this week's appointments: %v", err)), nil
	}

	loc := sc.Config().Location()
	header := fmt.Sprintf("Business week %s to %s:\n\n",
		window.Start.In(loc).Format("Monday, 2006-01-02 15:04"),
		window.End.In(loc).Format("Monday, 2006-01-02"),
	)
	return mcp.NewToolResultText(header + formatEvents(events, loc)), nil
}
