// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the harmoni directory and calendar via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/harmoni/internal/apperr"
	"github.com/starford/harmoni/internal/eventfiles"
	"github.com/starford/harmoni/internal/explore"
	"github.com/starford/harmoni/internal/models"
	"github.com/starford/harmoni/internal/siteservice"
)

const formatURI = "harmoni://calendar-format"

// Server wraps the MCP server with harmoni tools.
type Server struct {
	mcp   *server.MCPServer
	svc   *siteservice.Service
	dir   *eventfiles.Dir
	index eventfiles.Index
}

// Option configures a Server.
type Option func(*Server)

// WithCalendarDir enables write_calendar_file. Written files are imported
// into idx right away.
func WithCalendarDir(dir *eventfiles.Dir, idx eventfiles.Index) Option {
	return func(s *Server) {
		s.dir = dir
		s.index = idx
	}
}

// New creates a new MCP server with all harmoni tools registered.
func New(svc *siteservice.Service, version string, opts ...Option) *Server {
	s := &Server{svc: svc}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = server.NewMCPServer(
		"Harmoni",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_sites",
		mcp.WithDescription("Search places of worship by name with optional filters. Returns one page of list cards."),
		mcp.WithString("query", mcp.Description("Case-insensitive substring of the site name")),
		mcp.WithString("tipe", mcp.Description("Place type"), mcp.Enum("Mosque", "Church", "Vihara", "Temple")),
		mcp.WithString("wilayah", mcp.Description("Region, as returned by list_locations")),
		mcp.WithArray("agama", mcp.Description("Religions to include"), mcp.WithStringItems()),
		mcp.WithString("sort", mcp.Description("Sort key"),
			mcp.Enum("nama-asc", "nama-desc", "tahun-asc", "tahun-desc", "agama", "wilayah")),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
	), s.searchSites)

	s.mcp.AddTool(mcp.NewTool("get_site",
		mcp.WithDescription("Get the formatted detail of a single place of worship."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Site ID (e.g. MasjidIstiqlal)")),
	), s.getSite)

	s.mcp.AddTool(mcp.NewTool("list_locations",
		mcp.WithDescription("List the distinct regions sites are located in."),
	), s.listLocations)

	s.mcp.AddTool(mcp.NewTool("calendar_month",
		mcp.WithDescription("Render the month grid of the religious events calendar."),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Year (e.g. 2026)")),
		mcp.WithNumber("month", mcp.Required(), mcp.Description("Month 1-12")),
	), s.calendarMonth)

	s.mcp.AddTool(mcp.NewTool("upcoming_events",
		mcp.WithDescription("List events dated today or later."),
		mcp.WithNumber("page", mcp.Description("0-based page number")),
	), s.upcomingEvents)

	s.mcp.AddTool(mcp.NewTool("get_calendar_format",
		mcp.WithDescription("Returns the calendar file format. "+
			"Call this before writing calendar files."),
	), s.getCalendarFormat)

	if s.dir != nil {
		s.mcp.AddTool(mcp.NewTool("write_calendar_file",
			mcp.WithDescription("Create or replace a calendar file. Content MUST follow the "+
				"calendar file format; read it first via get_calendar_format or "+formatURI+"."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Relative path of the file (must end with .yaml or .yml)")),
			mcp.WithString("content", mcp.Required(), mcp.Description("YAML content following the calendar file format")),
		), s.writeCalendarFile)
	}

	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Calendar File Format",
			mcp.WithResourceDescription("YAML layout of the calendar event files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCalendarFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchSites(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := explore.Criteria{
		Query:  req.GetString("query", ""),
		Type:   models.PlaceType(req.GetString("tipe", "")),
		Region: req.GetString("wilayah", ""),
		Sort:   explore.SortKey(req.GetString("sort", "")),
	}
	for _, r := range req.GetStringSlice("agama", nil) {
		c.Religions = append(c.Religions, models.Religion(r))
	}
	page, err := s.svc.Explore(ctx, c, req.GetInt("page", 1))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(page)
}

func (s *Server) getSite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view, err := s.svc.SiteView(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(view)
}

func (s *Server) listLocations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	locs, err := s.svc.Locations(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(locs) == 0 {
		return mcp.NewToolResultText("no locations found"), nil
	}
	return mcp.NewToolResultText(strings.Join(locs, "\n")), nil
}

func (s *Server) calendarMonth(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := req.RequireInt("year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	month, err := req.RequireInt("month")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	g, err := s.svc.CalendarMonth(ctx, year, time.Month(month))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(g)
}

func (s *Server) upcomingEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	up, err := s.svc.Upcoming(ctx, req.GetInt("page", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(up)
}

func (s *Server) getCalendarFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(CalendarFormatContract), nil
}

func (s *Server) readCalendarFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatURI,
			MIMEType: "text/markdown",
			Text:     CalendarFormatContract,
		},
	}, nil
}

func (s *Server) writeCalendarFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !eventfiles.IsCalendarFile(path) {
		return mcp.NewToolResultError(fmt.Sprintf("not a calendar file: %s", path)), nil
	}
	events, err := eventfiles.Parse([]byte(content))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.dir.Write(path, []byte(content)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.index != nil {
		if _, err := eventfiles.Sync(ctx, s.index, s.dir, slog.Default()); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("written but not imported: %v", err)), nil
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("written: %s (%d events)", path, len(events))), nil
}
