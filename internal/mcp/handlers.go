package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/litscout/litscout/internal/api"
	"github.com/litscout/litscout/internal/config"
	"github.com/litscout/litscout/internal/history"
	"github.com/litscout/litscout/internal/library"
)

func (s *Server) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.client.Projects(ctx)
	if err != nil {
		return toolError(err), nil
	}
	if len(projects) == 0 {
		return mcp.NewToolResultText("No projects yet. Create one with the litscout CLI or dashboard."), nil
	}

	var b strings.Builder
	for _, p := range projects {
		fmt.Fprintf(&b, "- %s (%s)\n", p.Name, p.Path)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleListFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: project"), nil
	}

	paths, err := s.client.ListFiles(ctx, project)
	if err != nil {
		return toolError(err), nil
	}
	collection := library.FromListing(paths)

	categories := library.Categories
	if sourceStr := request.GetString("source", ""); sourceStr != "" {
		categories = []library.Category{library.Category(sourceStr)}
	}

	var b strings.Builder
	for _, category := range categories {
		records := collection.BySource(category)
		if len(records) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n", category)
		for _, r := range records {
			fmt.Fprintf(&b, "- %s (%s)\n", r.Name, r.Path)
		}
	}
	if b.Len() == 0 {
		return mcp.NewToolResultText("No files in this project yet."), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleSearchArticles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: project"), nil
	}
	sourceStr, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: source"), nil
	}
	source, err := config.ParseSource(sourceStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	termsStr, err := request.RequireString("terms")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: terms"), nil
	}

	req := api.RetrievalRequest{
		Project:   project,
		Terms:     splitCSV(termsStr),
		Operators: splitCSV(request.GetString("operators", "")),
		MaxPDFs:   request.GetInt("max_pdfs", 10),
	}
	clamped := req.Clamp()

	result, err := s.client.RetrieveArticles(ctx, source, req)
	if err != nil {
		return toolError(err), nil
	}

	if s.history != nil {
		s.history.Record(history.Search{
			Project:      project,
			Source:       source,
			Terms:        req.Terms,
			Operators:    req.Operators,
			MaxPDFs:      req.MaxPDFs,
			SuccessCount: result.SuccessCount,
			ErrorCount:   result.ErrorCount,
		})
	}

	msg := fmt.Sprintf("Retrieved %d articles", result.SuccessCount)
	if result.ErrorCount > 0 {
		msg += fmt.Sprintf(", %d failed", result.ErrorCount)
	}
	if clamped {
		msg += fmt.Sprintf(" (request capped at %d PDFs)", api.MaxPDFs)
	}
	msg += ". Use list_files to see them."
	return mcp.NewToolResultText(msg), nil
}

func (s *Server) handleCommonWords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: project"), nil
	}
	pdfPath, err := request.RequireString("pdf_path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: pdf_path"), nil
	}

	words, err := s.client.CommonWords(ctx, project, pdfPath)
	if err != nil {
		return toolError(err), nil
	}
	if len(words) == 0 {
		return mcp.NewToolResultText("No common words reported for this PDF."), nil
	}
	return mcp.NewToolResultText(strings.Join(words, ", ")), nil
}

// toolError renders a backend failure for the MCP host, pointing auth
// failures at the CLI login flow.
func toolError(err error) *mcp.CallToolResult {
	if api.IsKind(err, api.KindAuthExpired) {
		return mcp.NewToolResultError("Not logged in. Run `litscout auth login` first.")
	}
	return mcp.NewToolResultError(err.Error())
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
