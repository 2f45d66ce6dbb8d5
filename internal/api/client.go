// Package api is the HTTP client for the litscout research backend. Every
// method issues one request, checks the response shape, and returns either
// a typed result or an *Error classified per status code. There is no
// automatic retry anywhere.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/litscout/litscout/internal/auth"
)

// MaxUploadBytes is the client-side cap on file uploads. The server
// enforces its own limit; this one just fails fast.
const MaxUploadBytes = 10 << 20

// Client talks to one backend instance. Safe for concurrent use.
type Client struct {
	baseURL string
	session *auth.Session
	http    *http.Client

	// ShowProgress renders a byte progress bar on stderr during uploads.
	ShowProgress bool
}

// New creates a Client for the given base URL. A zero timeout means no
// timeout, matching how a browser waits on the slow extraction endpoints.
func New(baseURL string, session *auth.Session, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http:    &http.Client{Timeout: timeout},
	}
}

// authorized wires the bearer token header, or fails fast with a login
// hint when the session is logged out.
func (c *Client) authorized(req *http.Request) error {
	if !c.session.Authenticated() {
		return &Error{Kind: KindAuthExpired, Message: "not logged in, run `litscout auth login` first"}
	}
	req.Header.Set("Authorization", "Bearer "+c.session.Token())
	return nil
}

// do sends the request and returns the raw 2xx body. Non-2xx responses
// are classified; a 401 additionally clears the stored token, once, so
// the next command gates back to login.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "network error, check your connection and the api_url setting", cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "reading response failed", cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := classify(resp.StatusCode, body)
		if apiErr.Kind == KindAuthExpired {
			c.session.Expire()
		}
		return nil, apiErr
	}
	return body, nil
}

// postJSON POSTs a JSON body with bearer auth and returns the raw
// response body.
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if err := c.authorized(req); err != nil {
		return nil, err
	}
	return c.do(req)
}

// postAnon POSTs JSON without a bearer token, for the auth endpoints.
func (c *Client) postAnon(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

// postForm POSTs a urlencoded form without a bearer token.
func (c *Client) postForm(ctx context.Context, path string, values url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

// checkUpload enforces the client-side upload policy: the file must
// exist, carry one of the allowed extensions, and fit under
// MaxUploadBytes. The server remains authoritative.
func checkUpload(filePath string, allowedExts ...string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return validationErr("cannot read %s: %v", filePath, err)
	}
	if info.IsDir() {
		return validationErr("%s is a directory", filePath)
	}
	if info.Size() > MaxUploadBytes {
		return validationErr("%s is %.1f MiB, the upload limit is %d MiB",
			filepath.Base(filePath), float64(info.Size())/(1<<20), MaxUploadBytes>>20)
	}
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, allowed := range allowedExts {
		if ext == allowed {
			return nil
		}
	}
	return validationErr("%s: expected a %s file", filepath.Base(filePath), strings.Join(allowedExts, " or "))
}

// postFile uploads one file as a multipart form with the given extra
// fields. Content-Type is set from the multipart writer; no JSON headers.
func (c *Client) postFile(ctx context.Context, path, filePath string, fields map[string]string) ([]byte, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, validationErr("cannot read %s: %v", filePath, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to build upload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	var reader io.Reader = &buf
	if c.ShowProgress {
		bar := progressbar.DefaultBytes(int64(buf.Len()), "uploading "+filepath.Base(filePath))
		reader = io.TeeReader(&buf, bar)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := c.authorized(req); err != nil {
		return nil, err
	}
	return c.do(req)
}
