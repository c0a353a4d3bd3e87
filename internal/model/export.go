package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ExportStatus is the lifecycle state of an export job.
type ExportStatus string

const (
	// ExportToBeExported is the initial state of a newly created export.
	ExportToBeExported ExportStatus = "TOBEEXPORTED"

	// ExportExporting means the server is writing files.
	ExportExporting ExportStatus = "EXPORTING"

	// ExportExported means all files are written and downloadable.
	ExportExported ExportStatus = "EXPORTED"

	// ExportFailed is terminal; the job will not produce files.
	ExportFailed ExportStatus = "FAILED"
)

// ExportType selects where the server writes export output.
type ExportType string

const (
	ExportTypeLocal   ExportType = "LOCAL"
	ExportTypeS3      ExportType = "S3"
	ExportTypeDropbox ExportType = "DROPBOX"
)

// Export describes a server-side job that writes a project's (or an
// analysis's) imagery out as downloadable files.
//
// Exactly one of ProjectID and AnalysisID is set, mirroring how the job
// was created. The produced files are listed separately once Status is
// ExportExported.
type Export struct {
	ID         string       `json:"id"`
	ProjectID  string       `json:"projectId,omitempty"`
	AnalysisID string       `json:"toolRunId,omitempty"`
	Status     ExportStatus `json:"exportStatus"`
	Type       ExportType   `json:"exportType"`
	Source     string       `json:"source,omitempty"`
	Visibility string       `json:"visibility"`
}

// ExportFile is one downloadable artifact produced by a finished export.
type ExportFile struct {
	// Name is the file name the artifact should be saved under.
	Name string `json:"name"`

	// URL is the location the file content can be fetched from.
	URL string `json:"url"`
}

// ExportFilePage wraps the files listing for an export.
type ExportFilePage struct {
	Results []ExportFile `json:"results"`
}

// ExportRenderOptions is the server-side rendering configuration embedded in an
// export creation payload: the mask geometry limits the output region and
// Resolution is the zoom level to render at.
type ExportRenderOptions struct {
	Mask       *Geometry `json:"mask"`
	Resolution int       `json:"resolution"`
}

// ExportCreate is the payload for creating an export job.
type ExportCreate struct {
	ProjectID     string              `json:"projectId,omitempty"`
	AnalysisID    string              `json:"toolRunId,omitempty"`
	Status        ExportStatus        `json:"exportStatus"`
	Type          ExportType          `json:"exportType"`
	Source        string              `json:"source,omitempty"`
	Visibility    string              `json:"visibility"`
	RenderOptions ExportRenderOptions `json:"exportOptions"`
}

// Geometry is a GeoJSON MultiPolygon used as an export mask.
type Geometry struct {
	Type        string           `json:"type"`
	Coordinates [][][][2]float64 `json:"coordinates"`
}

// ParseBBox converts a "minLng,minLat,maxLng,maxLat" string into a
// MultiPolygon mask covering that box.
//
// Returns an error when the string does not contain exactly four
// parseable floats or when the minimums exceed the maximums.
//
// Example:
//
//	mask, err := model.ParseBBox("-122.5,37.7,-122.3,37.9")
func ParseBBox(bbox string) (*Geometry, error) {
	parts := strings.Split(bbox, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox must have 4 comma-separated values, got %d", len(parts))
	}

	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bbox component %q is not a number", part)
		}
		vals[i] = v
	}

	minX, minY, maxX, maxY := vals[0], vals[1], vals[2], vals[3]
	if minX > maxX || minY > maxY {
		return nil, fmt.Errorf("bbox minimums exceed maximums: %s", bbox)
	}

	ring := [][2]float64{
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
		{minX, minY},
	}

	return &Geometry{
		Type:        "MultiPolygon",
		Coordinates: [][][][2]float64{{ring}},
	}, nil
}
