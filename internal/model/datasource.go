package model

import "time"

// Band describes one spectral/data channel of a Datasource.
//
// A Band is an immutable value object: it has no identity or lifecycle of
// its own and is owned entirely by the Datasource that embeds it. The
// server preserves band order exactly as supplied at creation time.
//
// The Index field is the string-encoded ordinal position of the band
// within the source imagery, matching how the API represents it.
//
// Example:
//
//	red := model.NewBand("red", "0", 100.0)
//	// red.Name = "red", red.Index = "0", red.NoDataValue = 100.0
type Band struct {
	// Name is the human-readable label for the channel, e.g. "red".
	Name string `json:"name"`

	// Index is the string-encoded ordinal position of the channel.
	Index string `json:"index"`

	// NoDataValue is the sentinel pixel value marking missing data.
	NoDataValue float64 `json:"noDataValue"`
}

// NewBand constructs a Band value.
//
// NewBand has no side effects and no failure modes; it exists so call
// sites read the same way regardless of how band lists are assembled.
//
// Example:
//
//	bands := []model.Band{
//	    model.NewBand("red", "0", 100.0),
//	    model.NewBand("green", "1", 200.0),
//	    model.NewBand("blue", "2", 300.0),
//	}
func NewBand(name, index string, noDataValue float64) Band {
	return Band{
		Name:        name,
		Index:       index,
		NoDataValue: noDataValue,
	}
}

// Datasource represents a named collection of bands registered with the
// Raster Foundry API.
//
// The ID is assigned server-side at creation; the record held by a client
// is a cached copy that may go stale after server-side mutation. Band
// order is preserved as supplied at creation.
type Datasource struct {
	// ID is the opaque server-assigned identifier.
	ID string `json:"id"`

	// Name is the display name of the datasource.
	Name string `json:"name"`

	// Bands is the ordered sequence of channels.
	Bands []Band `json:"bands"`

	// CreatedAt and ModifiedAt are server-maintained timestamps.
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// DatasourceCreate is the payload for registering a new datasource.
type DatasourceCreate struct {
	Name  string `json:"name"`
	Bands []Band `json:"bands"`
}

// DatasourceUpdate is a partial field-level mutation of a datasource.
//
// Only non-nil fields are sent to the server; a nil field leaves the
// corresponding server-side value untouched.
//
// Example:
//
//	name := "Renamed"
//	err := client.UpdateDatasource(ctx, id, model.DatasourceUpdate{Name: &name})
type DatasourceUpdate struct {
	// Name replaces the display name when non-nil.
	Name *string `json:"name,omitempty"`

	// Bands replaces the full band sequence when non-nil.
	Bands *[]Band `json:"bands,omitempty"`
}

// DatasourcePage is one page of a datasource listing.
//
// The API paginates collection endpoints with a zero-based page number
// and a hasNext flag; clients walk pages until hasNext is false.
type DatasourcePage struct {
	Page    int          `json:"page"`
	HasNext bool         `json:"hasNext"`
	Results []Datasource `json:"results"`
}
