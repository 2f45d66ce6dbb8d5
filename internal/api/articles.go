package api

import (
	"context"
	"encoding/json"

	"github.com/litscout/litscout/internal/config"
)

// MaxPDFs is the hard per-search cap the backend enforces.
const MaxPDFs = 20

// RetrievalRequest describes one article search.
type RetrievalRequest struct {
	Project       string
	Country       string
	PatientCohort string
	Terms         []string
	Operators     []string
	MaxPDFs       int
}

// Clamp caps MaxPDFs at the backend limit and reports whether it had to.
// Callers surface the clamp as a validation notice before submitting.
func (r *RetrievalRequest) Clamp() bool {
	if r.MaxPDFs > MaxPDFs {
		r.MaxPDFs = MaxPDFs
		return true
	}
	return false
}

// RetrievalResult is the success/error tally of one search.
type RetrievalResult struct {
	SuccessCount int
	ErrorCount   int
}

type retrievalRequest struct {
	ProjectName   string   `json:"project_name"`
	Country       string   `json:"country"`
	PatientCohort string   `json:"patient_cohort"`
	SearchTerms   []string `json:"search_terms"`
	Operators     []string `json:"operators"`
	MaxPDFs       int      `json:"max_pdfs"`
}

func retrievalEndpoint(source config.Source) string {
	switch source {
	case config.SourceScholar:
		return "/v1/services/retrive_google_scholer_article"
	case config.SourcePubMed:
		return "/v1/services/retrive_pubmed_article"
	default:
		return "/v1/services/retrive_scholar_and_pubmed_articles"
	}
}

// RetrieveArticles runs a search against one or both sources. The
// single-source endpoints answer with a two-element [success, error]
// count array; the combined endpoint answers {"details": ...} and reports
// the requested count as the success tally. Anything else is
// KindUnexpectedShape.
func (c *Client) RetrieveArticles(ctx context.Context, source config.Source, req RetrievalRequest) (RetrievalResult, error) {
	if req.Project == "" {
		return RetrievalResult{}, validationErr("project name is required")
	}
	if len(req.Terms) == 0 || req.Terms[0] == "" {
		return RetrievalResult{}, validationErr("at least one search term is required")
	}
	req.Clamp()
	if req.Operators == nil {
		req.Operators = []string{}
	}

	body, err := c.postJSON(ctx, retrievalEndpoint(source), retrievalRequest{
		ProjectName:   req.Project,
		Country:       req.Country,
		PatientCohort: req.PatientCohort,
		SearchTerms:   req.Terms,
		Operators:     req.Operators,
		MaxPDFs:       req.MaxPDFs,
	})
	if err != nil {
		return RetrievalResult{}, err
	}

	if source == config.SourceBoth {
		var resp struct {
			Details string `json:"details"`
		}
		if err := json.Unmarshal(body, &resp); err != nil || resp.Details != "files downloaded successfully!" {
			return RetrievalResult{}, shapeErr("unexpected response from combined retrieval")
		}
		return RetrievalResult{SuccessCount: req.MaxPDFs}, nil
	}

	var counts []int
	if err := json.Unmarshal(body, &counts); err != nil || len(counts) != 2 {
		return RetrievalResult{}, shapeErr("unexpected response from article retrieval")
	}
	return RetrievalResult{SuccessCount: counts[0], ErrorCount: counts[1]}, nil
}
