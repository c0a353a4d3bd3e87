package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client wraps HTTP operations with Raster Foundry-specific configuration.
//
// Client provides:
//   - Bearer token authorization on every request
//   - JSON encoding/decoding for API payloads
//   - Timeout handling
//   - Export file download with progress tracking
//   - File size retrieval via HEAD requests
//
// Example usage:
//
//	client := NewClient(60 * time.Second)
//	client.SetToken(apiToken)
//
//	// Fetch a JSON resource
//	var ds model.Datasource
//	err := client.GetJSON(ctx, url, &ds)
//
//	// Download an export file with progress
//	err = client.DownloadFile(ctx, fileURL, "/exports/tile.tif", func(written, total int64) {
//	    percent := float64(written) / float64(total) * 100
//	    fmt.Printf("%.1f%%\n", percent)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
	token      string
}

// NewClient creates a new HTTP client for API requests.
//
// The client is configured with:
//   - The given timeout (60 seconds is a sensible default)
//   - "raster-foundry-go-client" User-Agent header
//
// No authorization header is sent until SetToken is called.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "raster-foundry-go-client",
	}
}

// SetToken sets the bearer token sent with subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// StatusError is returned for responses outside the 2xx range.
//
// The body is retained so callers can extract the server's error message
// and map the status code onto a domain error kind.
type StatusError struct {
	// Code is the HTTP status code of the response.
	Code int

	// Body is the raw response body, which may be empty.
	Body []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, http.StatusText(e.Code))
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// do performs a request with the standard headers and decodes a JSON
// response into out when out is non-nil. A JSON body is sent when in is
// non-nil.
func (c *Client) do(ctx context.Context, method, url string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return &StatusError{Code: resp.StatusCode, Body: respBody}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// GetJSON performs a GET request and decodes the JSON response into out.
//
// Example:
//
//	var page model.DatasourcePage
//	err := client.GetJSON(ctx, url, &page)
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	return c.do(ctx, http.MethodGet, url, nil, out)
}

// PostJSON performs a POST request with a JSON body, decoding the JSON
// response into out when out is non-nil.
func (c *Client) PostJSON(ctx context.Context, url string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, url, in, out)
}

// PutJSON performs a PUT request with a JSON body, ignoring any response
// body.
func (c *Client) PutJSON(ctx context.Context, url string, in interface{}) error {
	return c.do(ctx, http.MethodPut, url, in, nil)
}

// Delete performs a DELETE request, ignoring any response body.
func (c *Client) Delete(ctx context.Context, url string) error {
	return c.do(ctx, http.MethodDelete, url, nil, nil)
}

// Get performs a GET request and returns the raw response body.
//
// Use this for non-JSON content such as map tiles.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Body: respBody}
	}

	return io.ReadAll(resp.Body)
}

// GetFileSize returns the size of a file at the given URL via HEAD request.
//
// This is useful for pre-calculating total download size before fetching
// an export's files.
//
// Returns an error if the request fails or the server doesn't return a
// Content-Length header.
func (c *Client) GetFileSize(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no Content-Length header for %s", url)
	}

	return resp.ContentLength, nil
}

// DownloadFile downloads a file to the specified path with optional
// progress callback.
//
// The file is created (or truncated if it exists) and the content is
// streamed directly to disk, avoiding loading the entire file into
// memory.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes).
//     Pass nil to disable progress tracking.
//
// Example:
//
//	err := client.DownloadFile(ctx, fileURL, "/exports/scene.tif", func(written, total int64) {
//	    if total > 0 {
//	        fmt.Printf("%.1f%%\r", float64(written)/float64(total)*100)
//	    }
//	})
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return &StatusError{Code: resp.StatusCode, Body: respBody}
	}

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	_, err = io.Copy(writer, resp.Body)
	return err
}
