package api

import (
	"context"
	"encoding/json"

	"github.com/litscout/litscout/internal/wrapjson"
)

// ArticleType selects which term-extraction prompt the backend runs.
type ArticleType string

const (
	ArticleSurgicalDevice ArticleType = "Surgical Device"
	ArticleDiagnostic     ArticleType = "Diagnostic"
)

// TermExtractionRequest describes one term-extraction upload. The
// type-specific fields are required for their article type and ignored
// otherwise.
type TermExtractionRequest struct {
	FilePath    string
	ArticleType ArticleType

	SurgicalDeviceName string
	EnterTechnique     string

	DiagnosticTestType   string
	DiagnosticTestName   string
	DiagnosticSampleType string
	DiagnosticTechnique  string
}

func (r TermExtractionRequest) fields() (map[string]string, error) {
	fields := map[string]string{"article_type": string(r.ArticleType)}
	switch r.ArticleType {
	case ArticleSurgicalDevice:
		if r.SurgicalDeviceName == "" || r.EnterTechnique == "" {
			return nil, validationErr("surgical device name and technique are required")
		}
		fields["surgical_device_name"] = r.SurgicalDeviceName
		fields["enter_technique"] = r.EnterTechnique
	case ArticleDiagnostic:
		if r.DiagnosticTestType == "" || r.DiagnosticTestName == "" ||
			r.DiagnosticSampleType == "" || r.DiagnosticTechnique == "" {
			return nil, validationErr("all four diagnostic fields are required")
		}
		fields["diagnostic_test_type"] = r.DiagnosticTestType
		fields["diagnostic_test_name"] = r.DiagnosticTestName
		fields["diagnostic_sample_type"] = r.DiagnosticSampleType
		fields["diagnostic_technique"] = r.DiagnosticTechnique
	default:
		return nil, validationErr("article type must be %q or %q", ArticleSurgicalDevice, ArticleDiagnostic)
	}
	return fields, nil
}

// ExtractTerms uploads a PDF and returns the extracted field/value pairs.
// The endpoint answers in a legacy wrapped-JSON encoding decoded by
// wrapjson; an undecodable body is KindUnexpectedShape.
func (c *Client) ExtractTerms(ctx context.Context, req TermExtractionRequest) (wrapjson.Fields, error) {
	fields, err := req.fields()
	if err != nil {
		return nil, err
	}
	if err := checkUpload(req.FilePath, ".pdf"); err != nil {
		return nil, err
	}

	body, err := c.postFile(ctx, "/v1/services/term_extractor", req.FilePath, fields)
	if err != nil {
		return nil, err
	}
	terms, err := wrapjson.Decode(string(body))
	if err != nil {
		return nil, shapeErr("term extraction returned an undecodable body")
	}
	return terms, nil
}

// ExtractImages uploads a PDF and returns URLs of the extracted figures.
func (c *Client) ExtractImages(ctx context.Context, project, filePath string) ([]string, error) {
	if project == "" {
		return nil, validationErr("project name is required")
	}
	if err := checkUpload(filePath, ".pdf"); err != nil {
		return nil, err
	}

	body, err := c.postFile(ctx, "/v1/services/image_extractor", filePath, map[string]string{
		"project_name": project,
	})
	if err != nil {
		return nil, err
	}

	var urls []string
	if err := json.Unmarshal(body, &urls); err != nil {
		return nil, shapeErr("image extraction did not return a URL list")
	}
	return urls, nil
}

// ExtractTables uploads a PDF for table extraction. The endpoint signals
// success only through an exact message match.
func (c *Client) ExtractTables(ctx context.Context, project, filePath string) error {
	return c.extractByMessage(ctx, "/v1/services/table_extractor", project, filePath,
		"Csv file extracted successfully!")
}

// ExtractCombined uploads a PDF for combined image+table extraction.
func (c *Client) ExtractCombined(ctx context.Context, project, filePath string) error {
	return c.extractByMessage(ctx, "/v1/services/combined_extractor", project, filePath,
		"Combined extraction done!")
}

func (c *Client) extractByMessage(ctx context.Context, path, project, filePath, wantMessage string) error {
	if project == "" {
		return validationErr("project name is required")
	}
	if err := checkUpload(filePath, ".pdf"); err != nil {
		return err
	}

	body, err := c.postFile(ctx, path, filePath, map[string]string{"project_name": project})
	if err != nil {
		return err
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Message != wantMessage {
		return shapeErr("extraction finished with an unexpected response")
	}
	return nil
}
