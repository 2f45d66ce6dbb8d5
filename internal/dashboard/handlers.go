package dashboard

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/litscout/litscout/internal/api"
	"github.com/litscout/litscout/internal/config"
	"github.com/litscout/litscout/internal/history"
	"github.com/litscout/litscout/internal/library"
)

// pageData is the payload every template renders with.
type pageData struct {
	Title       string
	SidebarOpen bool
	Email       string
	Project     string
	Error       string
	Message     string
	Data        any
}

func (s *Server) page(r *http.Request, title string) pageData {
	return pageData{
		Title:       title,
		SidebarOpen: s.prefs.SidebarOpen(),
		Email:       s.session.Email(),
		Project:     chi.URLParam(r, "project"),
		Error:       r.URL.Query().Get("error"),
		Message:     r.URL.Query().Get("message"),
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

// redirectError sends the browser back to a page with the failure in the
// query string. A 401 has already cleared the session, so it gates back
// to login instead.
func (s *Server) redirectError(w http.ResponseWriter, r *http.Request, target string, err error) {
	if api.IsKind(err, api.KindAuthExpired) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if s.notifier != nil {
		s.notifier.Error("%v", err)
	}
	http.Redirect(w, r, target+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
}

func (s *Server) redirectMessage(w http.ResponseWriter, r *http.Request, target, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if s.notifier != nil {
		s.notifier.Success("%s", message)
	}
	http.Redirect(w, r, target+"?message="+url.QueryEscape(message), http.StatusSeeOther)
}

func projectBase(r *http.Request) string {
	return "/projects/view/" + url.PathEscape(chi.URLParam(r, "project"))
}

// --- auth ---

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.session.Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, "login", pageData{Title: "Login", Error: r.URL.Query().Get("error")})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	token, err := s.client.Login(r.Context(), email, password)
	if err != nil {
		http.Redirect(w, r, "/login?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	if err := s.session.Login(token, email); err != nil {
		s.log.Warn().Err(err).Msg("persisting session failed")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register", pageData{Title: "Register", Error: r.URL.Query().Get("error")})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	err := s.client.Register(r.Context(),
		r.FormValue("email"), r.FormValue("password"), r.FormValue("name"))
	if err != nil {
		http.Redirect(w, r, "/register?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login?message="+url.QueryEscape("account created, please login"), http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Logout(); err != nil {
		s.log.Warn().Err(err).Msg("clearing session failed")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleSidebarToggle(w http.ResponseWriter, r *http.Request) {
	open := !s.prefs.SidebarOpen()
	if err := s.prefs.SetSidebarOpen(open); err != nil {
		s.log.Warn().Err(err).Msg("persisting sidebar preference failed")
	}
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// --- projects ---

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.client.Projects(r.Context())
	if err != nil {
		s.redirectError(w, r, "/projects/create", err)
		return
	}
	data := s.page(r, "Projects")
	data.Data = projects
	s.render(w, "projects", data)
}

func (s *Server) handleCreateProjectPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "project_create", s.page(r, "Create Project"))
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	err := s.client.CreateProject(r.Context(), name, r.FormValue("description"))
	if err != nil {
		s.redirectError(w, r, "/projects/create", err)
		return
	}
	s.redirectMessage(w, r, "/projects", "project %s created", name)
}

func (s *Server) handleProjectHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "project_home", s.page(r, chi.URLParam(r, "project")))
}

// --- retrieval ---

func (s *Server) handleRetrievePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "retrieve", s.page(r, "Retrieve Articles"))
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")
	base := projectBase(r) + "/retrieve"

	source, err := config.ParseSource(r.FormValue("source"))
	if err != nil {
		s.redirectError(w, r, base, err)
		return
	}
	maxPDFs, _ := strconv.Atoi(r.FormValue("max_pdfs"))

	var terms []string
	for _, term := range []string{r.FormValue("term1"), r.FormValue("term2"), r.FormValue("term3")} {
		if strings.TrimSpace(term) != "" {
			terms = append(terms, strings.TrimSpace(term))
		}
	}
	var operators []string
	for _, op := range []string{r.FormValue("operator1"), r.FormValue("operator2")} {
		if op != "" {
			operators = append(operators, op)
		}
	}

	req := api.RetrievalRequest{
		Project:       project,
		Country:       r.FormValue("country"),
		PatientCohort: r.FormValue("patient_cohort"),
		Terms:         terms,
		Operators:     operators,
		MaxPDFs:       maxPDFs,
	}
	clamped := req.Clamp()

	result, err := s.client.RetrieveArticles(r.Context(), source, req)
	if err != nil {
		s.redirectError(w, r, base, err)
		return
	}

	if s.history != nil {
		_, herr := s.history.Record(history.Search{
			Project:      project,
			Source:       source,
			Terms:        terms,
			Operators:    operators,
			MaxPDFs:      req.MaxPDFs,
			SuccessCount: result.SuccessCount,
			ErrorCount:   result.ErrorCount,
		})
		if herr != nil {
			s.log.Warn().Err(herr).Msg("recording search failed")
		}
	}

	message := fmt.Sprintf("retrieved %d articles", result.SuccessCount)
	if result.ErrorCount > 0 {
		message += fmt.Sprintf(", %d failed", result.ErrorCount)
	}
	if clamped {
		message += fmt.Sprintf(" (capped at %d PDFs)", api.MaxPDFs)
	}
	s.redirectMessage(w, r, projectBase(r)+"/files", "%s", message)
}

// --- files ---

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")
	paths, err := s.client.ListFiles(r.Context(), project)
	if err != nil {
		s.redirectError(w, r, "/projects", err)
		return
	}
	collection := library.FromListing(paths)

	type sourceGroup struct {
		Source  library.Category
		Records []library.Record
	}
	var groups []sourceGroup
	for _, category := range library.Categories {
		groups = append(groups, sourceGroup{Source: category, Records: collection.BySource(category)})
	}

	data := s.page(r, "Downloaded Files")
	data.Data = groups
	s.render(w, "files", data)
}

func (s *Server) handleInclude(w http.ResponseWriter, r *http.Request) {
	s.screen(w, r, "include")
}

func (s *Server) handleExclude(w http.ResponseWriter, r *http.Request) {
	s.screen(w, r, "exclude")
}

func (s *Server) screen(w http.ResponseWriter, r *http.Request, action string) {
	project := chi.URLParam(r, "project")
	filePath := r.FormValue("file_path")
	reason := r.FormValue("reason")
	base := projectBase(r) + "/files"

	var err error
	if action == "include" {
		err = s.client.IncludeFile(r.Context(), project, filePath, reason)
	} else {
		err = s.client.ExcludeFile(r.Context(), project, filePath, reason)
	}
	if err != nil {
		s.redirectError(w, r, base, err)
		return
	}
	s.redirectMessage(w, r, base, "%sd %s", action, library.DisplayName(filePath))
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	base := projectBase(r) + "/files"
	filePath := r.FormValue("file_path")
	if err := s.client.UndoFile(r.Context(), filePath); err != nil {
		s.redirectError(w, r, base, err)
		return
	}
	s.redirectMessage(w, r, base, "undid decision on %s", library.DisplayName(filePath))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	base := projectBase(r) + "/files"
	filePath := r.FormValue("file_path")
	if err := s.client.DeleteFile(r.Context(), filePath); err != nil {
		s.redirectError(w, r, base, err)
		return
	}
	s.redirectMessage(w, r, base, "deleted %s", library.DisplayName(filePath))
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	filePath := r.URL.Query().Get("file_path")
	record := library.Record{Path: filePath, Source: library.Classify(filePath)}

	content, err := s.client.ViewMetadata(r.Context(), record)
	if err != nil {
		s.redirectError(w, r, projectBase(r)+"/files", err)
		return
	}
	data := s.page(r, library.DisplayName(filePath))
	data.Data = content
	s.render(w, "metadata", data)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filePath := r.URL.Query().Get("file_path")
	downloadURL, err := s.client.DownloadURL(r.Context(), filePath)
	if err != nil {
		s.redirectError(w, r, projectBase(r)+"/files", err)
		return
	}
	http.Redirect(w, r, downloadURL, http.StatusSeeOther)
}

// --- extraction ---

// saveUpload spools a browser upload to a temp file so the backend client
// can size-check and re-upload it. The caller removes the file.
func (s *Server) saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("no file uploaded: %w", err)
	}
	defer file.Close()

	dir, err := os.MkdirTemp("", "litscout-upload-")
	if err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(header.Filename))
	out, err := os.Create(path)
	if err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("spooling upload: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("spooling upload: %w", err)
	}
	return path, nil
}

func (s *Server) handleTermsPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "terms", s.page(r, "Term Extraction"))
}

func (s *Server) handleTerms(w http.ResponseWriter, r *http.Request) {
	base := projectBase(r) + "/terms"
	path, err := s.saveUpload(r)
	if err != nil {
		s.redirectError(w, r, base, err)
		return
	}
	defer os.RemoveAll(filepath.Dir(path))

	terms, err := s.client.ExtractTerms(r.Context(), api.TermExtractionRequest{
		FilePath:             path,
		ArticleType:          api.ArticleType(r.FormValue("article_type")),
		SurgicalDeviceName:   r.FormValue("surgical_device_name"),
		EnterTechnique:       r.FormValue("enter_technique"),
		DiagnosticTestType:   r.FormValue("diagnostic_test_type"),
		DiagnosticTestName:   r.FormValue("diagnostic_test_name"),
		DiagnosticSampleType: r.FormValue("diagnostic_sample_type"),
		DiagnosticTechnique:  r.FormValue("diagnostic_technique"),
	})
	if err != nil {
		s.redirectError(w, r, base, err)
		return
	}

	data := s.page(r, "Extracted Terms")
	data.Data = terms.DisplayRows()
	s.render(w, "terms_result", data)
}

func (s *Server) handleExtractPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "extract", s.page(r, "PDF Extraction"))
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")
	base := projectBase(r) + "/extract"
	mode := r.FormValue("mode")

	path, err := s.saveUpload(r)
	if err != nil {
		s.redirectError(w, r, base, err)
		return
	}
	defer os.RemoveAll(filepath.Dir(path))

	switch mode {
	case "images":
		urls, err := s.client.ExtractImages(r.Context(), project, path)
		if err != nil {
			s.redirectError(w, r, base, err)
			return
		}
		data := s.page(r, "Extracted Images")
		data.Data = urls
		s.render(w, "extract_images", data)
	case "tables":
		if err := s.client.ExtractTables(r.Context(), project, path); err != nil {
			s.redirectError(w, r, base, err)
			return
		}
		s.redirectMessage(w, r, projectBase(r)+"/files", "tables extracted to a CSV in the project")
	case "combined":
		if err := s.client.ExtractCombined(r.Context(), project, path); err != nil {
			s.redirectError(w, r, base, err)
			return
		}
		s.redirectMessage(w, r, projectBase(r)+"/files", "combined extraction finished")
	default:
		s.redirectError(w, r, base, fmt.Errorf("unknown extraction mode %q", mode))
	}
}

// --- word analysis ---

func (s *Server) handleWordsPage(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")
	paths, err := s.client.ListFiles(r.Context(), project)
	if err != nil {
		s.redirectError(w, r, projectBase(r), err)
		return
	}
	collection := library.FromListing(paths)

	var pdfs []library.Record
	for _, category := range []library.Category{library.CategoryPubMed, library.CategoryScholar,
		library.CategoryIncluded, library.CategoryExcluded} {
		pdfs = append(pdfs, collection.BySource(category)...)
	}

	data := s.page(r, "Word Analysis")
	data.Data = pdfs
	s.render(w, "words", data)
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")
	base := projectBase(r) + "/words"

	words, err := s.client.CommonWords(r.Context(), project, r.FormValue("pdf_path"))
	if err != nil {
		s.redirectError(w, r, base, err)
		return
	}
	data := s.page(r, "Common Words")
	data.Data = words
	s.render(w, "words_result", data)
}

// --- recent searches ---

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	var searches []history.Search
	if s.history != nil {
		var err error
		searches, err = s.history.List(r.URL.Query().Get("project"), 50)
		if err != nil {
			s.log.Warn().Err(err).Msg("listing searches failed")
		}
	}
	data := s.page(r, "Recent Searches")
	data.Data = searches
	s.render(w, "recent", data)
}
