// Package ioutils provides file system and image utilities for the
// Raster Foundry client.
//
// This package contains functions for:
//   - File writing
//   - Filename sanitization
//   - Directory creation
//   - Tile preview resizing (JPEG output)
//
// All functions that accept a context.Context respect cancellation,
// though file operations themselves may not be interruptible.
package ioutils
