package api

import (
	"context"
	"encoding/json"
)

// CommonWords runs the word-frequency analysis over one stored PDF and
// returns the backend's word list.
func (c *Client) CommonWords(ctx context.Context, project, pdfPath string) ([]string, error) {
	switch {
	case project == "":
		return nil, validationErr("project name is required")
	case pdfPath == "":
		return nil, validationErr("select a PDF from the project listing first")
	}

	body, err := c.postJSON(ctx, "/v1/services/extract_common_words", struct {
		S3PDFPath   string `json:"s3_pdf_path"`
		ProjectName string `json:"project_name"`
	}{pdfPath, project})
	if err != nil {
		return nil, err
	}

	var words []string
	if err := json.Unmarshal(body, &words); err != nil {
		return nil, shapeErr("word analysis did not return a word list")
	}
	return words, nil
}
