package api

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/litscout/litscout/internal/library"
)

// ListFiles returns the raw storage paths of everything under a project.
// Callers feed the result to library.FromListing.
func (c *Client) ListFiles(ctx context.Context, project string) ([]string, error) {
	if project == "" {
		return nil, validationErr("project name is required")
	}
	body, err := c.postJSON(ctx, "/v1/services/get_all_file_and_folders", struct {
		ProjectName string `json:"project_name"`
	}{project})
	if err != nil {
		return nil, err
	}

	var paths []string
	if err := json.Unmarshal(body, &paths); err != nil {
		return nil, shapeErr("file listing was not an array of paths")
	}
	return paths, nil
}

type screenRequest struct {
	FilePath    string `json:"file_path"`
	Reason      string `json:"reason"`
	Topic       string `json:"topic"`
	ProjectName string `json:"project_name"`
}

// IncludeFile marks an article as included in the review, with a reason.
// The topic is derived from the file's storage path.
func (c *Client) IncludeFile(ctx context.Context, project, filePath, reason string) error {
	return c.screen(ctx, "/v1/services/include_file", project, filePath, reason)
}

// ExcludeFile marks an article as excluded, with a reason.
func (c *Client) ExcludeFile(ctx context.Context, project, filePath, reason string) error {
	return c.screen(ctx, "/v1/services/exclude_file", project, filePath, reason)
}

func (c *Client) screen(ctx context.Context, path, project, filePath, reason string) error {
	switch {
	case project == "":
		return validationErr("project name is required")
	case filePath == "":
		return validationErr("file path is required")
	case reason == "":
		return validationErr("a reason is required")
	}
	_, err := c.postJSON(ctx, path, screenRequest{
		FilePath:    filePath,
		Reason:      reason,
		Topic:       library.Topic(filePath),
		ProjectName: project,
	})
	return err
}

type filePathRequest struct {
	FilePath string `json:"file_path"`
}

// UndoFile reverses an include/exclude decision.
func (c *Client) UndoFile(ctx context.Context, filePath string) error {
	if filePath == "" {
		return validationErr("file path is required")
	}
	_, err := c.postJSON(ctx, "/v1/services/undo_file", filePathRequest{filePath})
	return err
}

// DeleteFile removes a file from the project's storage.
func (c *Client) DeleteFile(ctx context.Context, filePath string) error {
	if filePath == "" {
		return validationErr("file path is required")
	}
	_, err := c.postJSON(ctx, "/v1/services/delete_file", filePathRequest{filePath})
	return err
}

var headingPattern = regexp.MustCompile(`([A-Za-z]+):`)

// ViewMetadata fetches the .txt sidecar next to a managed file and
// reformats its run-on content with a line break before each heading.
func (c *Client) ViewMetadata(ctx context.Context, record library.Record) (string, error) {
	body, err := c.postJSON(ctx, "/v1/services/view_content", filePathRequest{
		FilePath: library.MetadataPath(record),
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", shapeErr("metadata response carried no content field")
	}
	return headingPattern.ReplaceAllString(resp.Content, "\n$1:"), nil
}

// DownloadURL asks the backend for a short-lived URL serving the file at
// the given storage path.
func (c *Client) DownloadURL(ctx context.Context, storagePath string) (string, error) {
	if storagePath == "" {
		return "", validationErr("file path is required")
	}
	body, err := c.postJSON(ctx, "/v1/services/download_articles", struct {
		Path string `json:"path"`
	}{storagePath})
	if err != nil {
		return "", err
	}

	var url string
	if err := json.Unmarshal(body, &url); err != nil || url == "" {
		return "", shapeErr("download endpoint did not return a URL")
	}
	return url, nil
}
