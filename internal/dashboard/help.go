package dashboard

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
)

const helpMarkdown = `# LitScout Help

LitScout is a thin client for the document-research backend. Everything it
shows comes from the server; nothing is cached between page loads.

## Projects

Every search and file lives under a project. The home page checks your
projects on each visit and sends you to project creation when you have
none yet.

## Retrieving articles

Pick PubMed, Google Scholar, or both, enter up to three search terms with
AND/OR operators, and a PDF count. The backend caps each search at 20
PDFs; larger requests are trimmed with a notice.

## Downloaded files

Files are grouped by where their storage path puts them: PubMed,
Google Scholar, CSV exports, images, and your included/excluded
decisions. Include and exclude need a reason and can be undone; a fresh
listing from the server always wins over local state.

## Extraction tools

- **Term extraction** uploads a PDF and returns a field table for the
  chosen article type.
- **Image extraction** returns links to the figures found in a PDF.
- **Table extraction** writes a CSV into the project.
- **Combined extraction** runs both in one pass.

Uploads are limited to 10 MiB and must be PDFs.

## Word analysis

Runs a word-frequency pass over one already-retrieved PDF.
`

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(helpMarkdown), &buf); err != nil {
		s.log.Error().Err(err).Msg("rendering help failed")
		http.Error(w, "help unavailable", http.StatusInternalServerError)
		return
	}

	data := s.page(r, "Help")
	data.Data = template.HTML(buf.String())
	s.render(w, "help", data)
}
