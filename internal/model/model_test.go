package model

import (
	"testing"
)

func TestNewBand(t *testing.T) {
	band := NewBand("red", "0", 100.0)

	if band.Name != "red" {
		t.Errorf("Name = %q, want %q", band.Name, "red")
	}
	if band.Index != "0" {
		t.Errorf("Index = %q, want %q", band.Index, "0")
	}
	if band.NoDataValue != 100.0 {
		t.Errorf("NoDataValue = %v, want %v", band.NoDataValue, 100.0)
	}
}

func TestProject_Center(t *testing.T) {
	tests := []struct {
		name    string
		extent  *Extent
		wantLat float64
		wantLng float64
		wantErr bool
	}{
		{
			name: "simple extent",
			extent: &Extent{
				Type: "Polygon",
				Coordinates: [][][2]float64{{
					{-122.5, 37.7},
					{-122.3, 37.7},
					{-122.3, 37.9},
					{-122.5, 37.9},
					{-122.5, 37.7},
				}},
			},
			wantLat: 37.8,
			wantLng: -122.4,
		},
		{
			name: "extent straddling the antimeridian",
			extent: &Extent{
				Type: "Polygon",
				Coordinates: [][][2]float64{{
					{179, -10},
					{-179, -10},
					{-179, 10},
					{179, 10},
					{179, -10},
				}},
			},
			wantLat: 0,
			wantLng: 180,
		},
		{
			name:    "no extent",
			extent:  nil,
			wantErr: true,
		},
		{
			name:    "empty coordinates",
			extent:  &Extent{Type: "Polygon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project{ID: "p-1", Name: "Test", Extent: tt.extent}

			lat, lng, err := p.Center()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !approx(lat, tt.wantLat) {
				t.Errorf("lat = %v, want %v", lat, tt.wantLat)
			}
			if !approx(lng, tt.wantLng) {
				t.Errorf("lng = %v, want %v", lng, tt.wantLng)
			}
		})
	}
}

func approx(got, want float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}

func TestProject_TileTemplate(t *testing.T) {
	p := Project{ID: "abc-123"}

	got := p.TileTemplate("https", "tiles.rasterfoundry.com")
	want := "https://tiles.rasterfoundry.com/tiles/abc-123/{z}/{x}/{y}/"
	if got != want {
		t.Errorf("TileTemplate() = %q, want %q", got, want)
	}
}

func TestProject_TilePath(t *testing.T) {
	p := Project{ID: "abc-123"}

	got := p.TilePath(10, 163, 395)
	want := "/tiles/abc-123/10/163/395/"
	if got != want {
		t.Errorf("TilePath() = %q, want %q", got, want)
	}
}

func TestParseBBox(t *testing.T) {
	tests := []struct {
		name    string
		bbox    string
		wantErr bool
	}{
		{name: "valid bbox", bbox: "-122.5,37.7,-122.3,37.9"},
		{name: "valid with spaces", bbox: "-122.5, 37.7, -122.3, 37.9"},
		{name: "too few components", bbox: "-122.5,37.7,-122.3", wantErr: true},
		{name: "non-numeric", bbox: "a,b,c,d", wantErr: true},
		{name: "min exceeds max", bbox: "-122.3,37.7,-122.5,37.9", wantErr: true},
		{name: "empty", bbox: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geom, err := ParseBBox(tt.bbox)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if geom.Type != "MultiPolygon" {
				t.Errorf("Type = %q, want %q", geom.Type, "MultiPolygon")
			}
			if len(geom.Coordinates) != 1 || len(geom.Coordinates[0]) != 1 {
				t.Fatalf("expected one polygon with one ring, got %v", geom.Coordinates)
			}

			ring := geom.Coordinates[0][0]
			if len(ring) != 5 {
				t.Errorf("ring has %d positions, want 5 (closed box)", len(ring))
			}
			if ring[0] != ring[len(ring)-1] {
				t.Error("ring is not closed")
			}
		})
	}
}
