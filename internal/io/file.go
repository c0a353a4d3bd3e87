package ioutils

import (
	"context"
	"os"
	"regexp"
	"strings"
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Example:
//
//	err := WriteFile(ctx, "/exports/preview.jpg", jpegData)
func WriteFile(ctx context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// SanitizeFileName removes or replaces characters that are invalid in
// file/folder names.
//
// Export file names and datasource names come from the server and may
// contain anything; this function ensures the local paths built from
// them are valid across operating systems, particularly Windows which
// has the most restrictive naming rules.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("scene: 1/2.tif")  // Returns "scene_ 1_2.tif"
func SanitizeFileName(name string) string {
	// Replace invalid path/file characters with underscore
	// Characters: < > : " / \ | ? * and control characters (0x00-0x1f)
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots (Windows doesn't allow filenames ending with dots)
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space for cleaner names
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Remove trailing whitespace
	name = strings.TrimRight(name, " ")

	return name
}

// EnsureDir creates a directory and all parent directories if they
// don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/exports/my-project")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
