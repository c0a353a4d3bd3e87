package foundry

import (
	"context"

	"github.com/raster-foundry/raster-foundry-go-client/internal/model"
)

// ExportOptions describes an export job to create.
//
// Exactly one of ProjectID and AnalysisID must be set; CreateExport
// rejects ambiguous or empty targets before any request is made.
type ExportOptions struct {
	// ProjectID selects a project to export.
	ProjectID string

	// AnalysisID selects an analysis run to export.
	AnalysisID string

	// BBox is the "minLng,minLat,maxLng,maxLat" region to export.
	BBox string

	// Zoom is the zoom level to render the export at.
	Zoom int

	// Visibility defaults to "PRIVATE".
	Visibility string

	// Type defaults to ExportTypeLocal.
	Type model.ExportType

	// Source is the destination for the exported files, when Type
	// requires one (e.g. an S3 URI).
	Source string
}

// CreateExport starts an asynchronous export job for a project or an
// analysis.
//
// Returns a *ValidationError when both or neither of ProjectID and
// AnalysisID are set, or when the bbox cannot be parsed; these checks
// happen client-side before any request. The returned export starts in
// the TOBEEXPORTED state; poll GetExport until it reaches EXPORTED.
//
// Example:
//
//	export, err := client.CreateExport(ctx, foundry.ExportOptions{
//	    ProjectID: project.ID,
//	    BBox:      "-122.5,37.7,-122.3,37.9",
//	    Zoom:      14,
//	})
func (c *Client) CreateExport(ctx context.Context, opts ExportOptions) (*model.Export, error) {
	if opts.ProjectID != "" && opts.AnalysisID != "" {
		return nil, &ValidationError{Message: "ambiguous export target: only one of project or analysis may be set"}
	}
	if opts.ProjectID == "" && opts.AnalysisID == "" {
		return nil, &ValidationError{Message: "nothing to export: one of project or analysis must be set"}
	}

	mask, err := model.ParseBBox(opts.BBox)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	if opts.Visibility == "" {
		opts.Visibility = "PRIVATE"
	}
	if opts.Type == "" {
		opts.Type = model.ExportTypeLocal
	}

	payload := model.ExportCreate{
		ProjectID:  opts.ProjectID,
		AnalysisID: opts.AnalysisID,
		Status:     model.ExportToBeExported,
		Type:       opts.Type,
		Source:     opts.Source,
		Visibility: opts.Visibility,
		RenderOptions: model.ExportRenderOptions{
			Mask:       mask,
			Resolution: opts.Zoom,
		},
	}

	var export model.Export
	if err := c.http.PostJSON(ctx, c.endpoint("/exports"), payload, &export); err != nil {
		return nil, classify(err)
	}
	return &export, nil
}

// GetExport returns one export job by identifier.
//
// Returns ErrNotFound when no export with the given id exists.
func (c *Client) GetExport(ctx context.Context, id string) (*model.Export, error) {
	var export model.Export
	if err := c.http.GetJSON(ctx, c.endpoint("/exports/"+id), &export); err != nil {
		return nil, classify(err)
	}
	return &export, nil
}

// ListExportFiles returns the downloadable files produced by a finished
// export.
func (c *Client) ListExportFiles(ctx context.Context, id string) ([]model.ExportFile, error) {
	var page model.ExportFilePage
	if err := c.http.GetJSON(ctx, c.endpoint("/exports/"+id+"/files"), &page); err != nil {
		return nil, classify(err)
	}
	return page.Results, nil
}

// DownloadFile streams one export file to destPath, reporting progress
// through the optional callback.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	return classify(c.http.DownloadFile(ctx, url, destPath, onProgress))
}

// FileSize returns the byte size of a remote export file via HEAD.
func (c *Client) FileSize(ctx context.Context, url string) (int64, error) {
	size, err := c.http.GetFileSize(ctx, url)
	if err != nil {
		return 0, classify(err)
	}
	return size, nil
}
