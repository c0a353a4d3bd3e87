// Package http provides an HTTP client configured for Raster Foundry API
// requests.
//
// The Client in this package handles:
//   - Bearer token authorization headers
//   - JSON request/response encoding
//   - File download with progress tracking
//   - File size retrieval via HEAD requests
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient(60 * time.Second)
//	client.SetToken(apiToken)
//
//	var page model.DatasourcePage
//	err := client.GetJSON(ctx, url, &page)
//
// Non-2xx responses are returned as *StatusError so callers can map them
// onto domain error kinds; this package itself knows nothing about the
// API's error taxonomy.
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress
// tracking during large export-file downloads:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
