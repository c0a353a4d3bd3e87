package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoExtent is returned by Project.Center when the project has no
// extent geometry to compute a center from.
var ErrNoExtent = errors.New("project has no extent coordinates")

// tilePathTemplate is the TMS path for a project's tiles. The {z}/{x}/{y}
// placeholders are left literal for consumers that hand the template to a
// map widget; TilePath substitutes concrete coordinates.
const tilePathTemplate = "/tiles/%s/{z}/{x}/{y}/"

// Extent is a GeoJSON polygon describing the footprint of a project.
//
// Coordinates follow GeoJSON conventions: an outer ring of [lng, lat]
// positions, with optional holes in subsequent rings. Only the outer ring
// participates in center computation.
type Extent struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// Project is a collection of scenes registered with the service.
//
// Projects are listed and fetched read-only by this client; the center
// and tile helpers exist so callers can point a map at a project without
// re-deriving geometry themselves.
type Project struct {
	// ID is the opaque server-assigned identifier.
	ID string `json:"id"`

	// Name is the display name of the project.
	Name string `json:"name"`

	// Extent is the project's footprint, if the server has computed one.
	Extent *Extent `json:"extent,omitempty"`
}

// Center returns the (lat, lng) midpoint of the project's extent.
//
// Longitudes are shifted into the 0..360 range before averaging so that
// extents straddling the antimeridian produce a center on the correct
// side, then shifted back into -180..180.
//
// Returns ErrNoExtent when the project carries no usable extent.
func (p *Project) Center() (lat, lng float64, err error) {
	if p.Extent == nil || len(p.Extent.Coordinates) == 0 || len(p.Extent.Coordinates[0]) == 0 {
		return 0, 0, ErrNoExtent
	}

	ring := p.Extent.Coordinates[0]

	xMin, xMax := wrapLng(ring[0][0]), wrapLng(ring[0][0])
	yMin, yMax := ring[0][1], ring[0][1]
	for _, coord := range ring[1:] {
		x := wrapLng(coord[0])
		if x < xMin {
			xMin = x
		}
		if x > xMax {
			xMax = x
		}
		if coord[1] < yMin {
			yMin = coord[1]
		}
		if coord[1] > yMax {
			yMax = coord[1]
		}
	}

	lat = (yMin + yMax) / 2
	lng = (xMin + xMax) / 2
	if lng > 180 {
		lng -= 360
	}
	return lat, lng, nil
}

// wrapLng shifts western longitudes into the 0..360 range.
func wrapLng(x float64) float64 {
	if x < 0 {
		return x + 360
	}
	return x
}

// TileTemplate returns the TMS URL template for this project, with
// {z}/{x}/{y} placeholders intact.
//
// Example:
//
//	p.TileTemplate("https", "tiles.rasterfoundry.com")
//	// "https://tiles.rasterfoundry.com/tiles/<id>/{z}/{x}/{y}/"
func (p *Project) TileTemplate(scheme, tileHost string) string {
	return fmt.Sprintf("%s://%s"+tilePathTemplate, scheme, tileHost, p.ID)
}

// TilePath returns the tile path for a concrete zoom/column/row.
func (p *Project) TilePath(z, x, y int) string {
	path := fmt.Sprintf(tilePathTemplate, p.ID)
	path = strings.Replace(path, "{z}", fmt.Sprintf("%d", z), 1)
	path = strings.Replace(path, "{x}", fmt.Sprintf("%d", x), 1)
	path = strings.Replace(path, "{y}", fmt.Sprintf("%d", y), 1)
	return path
}

// ProjectPage is one page of a project listing.
type ProjectPage struct {
	Page    int       `json:"page"`
	HasNext bool      `json:"hasNext"`
	Results []Project `json:"results"`
}
