// Package model defines the core data structures exchanged with the
// Raster Foundry API.
//
// # Datasource
//
// Datasource represents a named collection of spectral bands registered
// with the service:
//
//	ds := model.Datasource{
//	    Name: "Landsat 8",
//	    Bands: []model.Band{
//	        model.NewBand("red", "0", 0),
//	        model.NewBand("green", "1", 0),
//	    },
//	}
//
// # Band
//
// Band is an immutable value describing one channel of a Datasource.
// Bands have no identity of their own; they live and die with the
// Datasource that embeds them, in the order they were supplied.
//
// # Project and Export
//
// Project carries the extent geometry needed to center a map view and
// build tile URLs. Export describes a server-side job that writes a
// project's imagery out to downloadable files.
//
// All types in this package are plain data with pure helper methods;
// network I/O lives in the foundry package.
package model
