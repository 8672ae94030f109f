// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes AeroLogix maintenance tools for LLM integration via stdio
// transport. It powers the in-app assistant.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aerologix/aerologix/internal/fleet"
	"github.com/aerologix/aerologix/internal/models"
	"github.com/aerologix/aerologix/internal/store"
)

// Server wraps the MCP server with AeroLogix tools. All tools run on behalf
// of one account, resolved by email at call time.
type Server struct {
	mcp          *server.MCPServer
	svc          *fleet.Service
	db           *store.DB
	accountEmail string
}

// New creates a new MCP server with all AeroLogix tools registered.
// accountEmail selects the account the assistant acts for.
func New(svc *fleet.Service, db *store.DB, accountEmail string) *Server {
	s := &Server{svc: svc, db: db, accountEmail: fleet.NormalizeEmail(accountEmail)}

	s.mcp = server.NewMCPServer(
		"AeroLogix",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_aircraft",
		mcp.WithDescription("List the account's aircraft, including aircraft shared with it."),
	), s.listAircraft)

	s.mcp.AddTool(mcp.NewTool("get_aircraft",
		mcp.WithDescription("Get one aircraft by registration mark (e.g. C-GABC)."),
		mcp.WithString("registration", mcp.Required(), mcp.Description("Registration mark, case-insensitive")),
	), s.getAircraft)

	s.mcp.AddTool(mcp.NewTool("get_elt_status",
		mcp.WithDescription("Derive the ELT compliance status of an aircraft: "+
			"ok, warning, critical, or none when no ELT is configured. "+
			"Includes the alerts behind the verdict."),
		mcp.WithString("registration", mcp.Required(), mcp.Description("Registration mark of the aircraft")),
	), s.getELTStatus)

	s.mcp.AddTool(mcp.NewTool("get_component_settings",
		mcp.WithDescription("Get the maintenance interval settings of an aircraft. "+
			"Falls back to the Transport Canada reference values when none are stored."),
		mcp.WithString("registration", mcp.Required(), mcp.Description("Registration mark of the aircraft")),
	), s.getComponentSettings)

	s.mcp.AddTool(mcp.NewTool("get_regulations",
		mcp.WithDescription("Returns the Transport Canada maintenance reference values "+
			"(RAC 605 / Standard 625) used by the application. Informational only."),
	), s.getRegulations)

	// Resource: regulation reference document.
	s.mcp.AddResource(
		mcp.NewResource("aerologix://regulations", "Maintenance Regulation Reference",
			mcp.WithResourceDescription("Transport Canada maintenance interval reference values."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRegulationsResource,
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

// user resolves the configured account. Every tool goes through the same
// authorization paths as the HTTP API.
func (s *Server) user(ctx context.Context) (*models.User, error) {
	u, err := s.db.GetUserByEmail(ctx, s.accountEmail)
	if err != nil {
		return nil, fmt.Errorf("account %s not found", s.accountEmail)
	}
	return u, nil
}

// findAircraft resolves a registration mark to an aircraft the account may
// read, searching owned aircraft first and shared ones second.
func (s *Server) findAircraft(ctx context.Context, u *models.User, registration string) (*models.Aircraft, error) {
	reg := fleet.FormatRegistration(registration)

	owned, err := s.svc.ListAircraft(ctx, u)
	if err != nil {
		return nil, err
	}
	shared, err := s.svc.ListSharedAircraft(ctx, u)
	if err != nil {
		return nil, err
	}
	for _, a := range append(owned, shared...) {
		if a.Registration == reg {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("no aircraft with registration %s", reg)
}

func (s *Server) listAircraft(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	u, err := s.user(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	owned, err := s.svc.ListAircraft(ctx, u)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	shared, err := s.svc.ListSharedAircraft(ctx, u)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var lines []string
	for _, a := range owned {
		lines = append(lines, fmt.Sprintf("%s  %s %s (%d)  owned", a.Registration, a.Manufacturer, a.Model, a.Year))
	}
	for _, a := range shared {
		lines = append(lines, fmt.Sprintf("%s  %s %s (%d)  shared", a.Registration, a.Manufacturer, a.Model, a.Year))
	}
	if len(lines) == 0 {
		return mcp.NewToolResultText("no aircraft"), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getAircraft(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	registration, err := req.RequireString("registration")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	u, err := s.user(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := s.findAircraft(ctx, u, registration)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(a, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getELTStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	registration, err := req.RequireString("registration")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	u, err := s.user(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := s.findAircraft(ctx, u, registration)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := s.svc.ELTStatus(ctx, u, a.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getComponentSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	registration, err := req.RequireString("registration")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	u, err := s.user(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := s.findAircraft(ctx, u, registration)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cs, err := s.svc.GetComponentSettings(ctx, u, a.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(cs, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getRegulations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RegulationsReference), nil
}

func (s *Server) readRegulationsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "aerologix://regulations",
			MIMEType: "text/markdown",
			Text:     RegulationsReference,
		},
	}, nil
}
