package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/litscout/litscout/internal/api"
	"github.com/litscout/litscout/internal/auth"
	"github.com/litscout/litscout/internal/history"
)

func testServer(t *testing.T, backend http.HandlerFunc) *Server {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	store := auth.NewStore(filepath.Join(t.TempDir(), "session.json"))
	session := auth.NewSession(store)
	if err := session.Login("test-token", "user@example.com"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	historyStore, err := history.OpenMemory()
	if err != nil {
		t.Fatalf("opening history: %v", err)
	}
	t.Cleanup(func() { historyStore.Close() })

	return NewServer(api.New(srv.URL, session, 0), historyStore)
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("content is not text: %T", result.Content[0])
	}
	return text.Text
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
	}{
		{listProjectsTool, "list_projects"},
		{listFilesTool, "list_files"},
		{searchArticlesTool, "search_articles"},
		{commonWordsTool, "extract_common_words"},
	}

	for _, tt := range tests {
		if tt.tool.Name != tt.wantName {
			t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
		}
		if tt.tool.Description == "" {
			t.Errorf("%s: tool description should not be empty", tt.wantName)
		}
	}
}

func TestHandleListProjects(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"users/u1/kidney/", "users/u1/liver/"})
	})

	result, err := srv.handleListProjects(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	text := textContent(t, result)
	if !strings.Contains(text, "kidney") || !strings.Contains(text, "liver") {
		t.Errorf("projects missing from %q", text)
	}
}

func TestHandleListFiles(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{
			"users/u1/kidney/pubmed/topicA/file_1.pdf",
			"users/u1/kidney/includes/topicA/file_2.pdf",
		})
	})

	t.Run("all sources", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"project": "kidney"}

		result, err := srv.handleListFiles(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := textContent(t, result)
		if !strings.Contains(text, "PubMed") || !strings.Contains(text, "Included") {
			t.Errorf("groups missing from %q", text)
		}
	})

	t.Run("single source", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"project": "kidney", "source": "Included"}

		result, err := srv.handleListFiles(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := textContent(t, result)
		if strings.Contains(text, "PubMed") || !strings.Contains(text, "file 2.pdf") {
			t.Errorf("filter not applied: %q", text)
		}
	})

	t.Run("missing project", func(t *testing.T) {
		result, err := srv.handleListFiles(context.Background(), mcp.CallToolRequest{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing project")
		}
	})
}

func TestHandleSearchArticles(t *testing.T) {
	var gotBody map[string]any
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`[7, 1]`))
	})

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"project":   "kidney",
		"source":    "pubmed",
		"terms":     "dialysis, outcomes",
		"operators": "AND",
		"max_pdfs":  float64(25),
	}

	result, err := srv.handleSearchArticles(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if gotBody["max_pdfs"].(float64) != 20 {
		t.Errorf("max_pdfs = %v, want clamped 20", gotBody["max_pdfs"])
	}
	text := textContent(t, result)
	if !strings.Contains(text, "Retrieved 7 articles") || !strings.Contains(text, "1 failed") {
		t.Errorf("summary = %q", text)
	}

	searches, _ := srv.history.List("kidney", 0)
	if len(searches) != 1 || searches[0].SuccessCount != 7 {
		t.Errorf("history = %v", searches)
	}
}

func TestHandleCommonWords(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"dialysis", "renal"})
	})

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"project":  "kidney",
		"pdf_path": "users/u1/kidney/pubmed/topicA/file_1.pdf",
	}

	result, err := srv.handleCommonWords(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := textContent(t, result); text != "dialysis, renal" {
		t.Errorf("words = %q", text)
	}
}

func TestToolErrorPointsAtLogin(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	result, err := srv.handleListProjects(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for 401")
	}
	if text := textContent(t, result); !strings.Contains(text, "litscout auth login") {
		t.Errorf("error text = %q", text)
	}
}
