package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/raster-foundry/raster-foundry-go-client/internal/config"
	"github.com/raster-foundry/raster-foundry-go-client/internal/foundry"
	ioutils "github.com/raster-foundry/raster-foundry-go-client/internal/io"
	"github.com/raster-foundry/raster-foundry-go-client/internal/model"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// pendingFile is one export file resolved to a local destination.
type pendingFile struct {
	file model.ExportFile
	dest string
}

// Manager coordinates export file downloads.
type Manager struct {
	settings *config.Settings
	client   *foundry.Client

	export *model.Export
	files  []pendingFile

	totalBytes      int64
	receivedBytes   int64
	totalFiles      int32
	downloadedFiles int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
//
// The progress callback may be nil when no progress rendering is
// wanted.
func NewManager(settings *config.Settings, client *foundry.Client, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		client:     client,
		onProgress: onProgress,
	}
}

// Initialize resolves the export and its file list.
//
// The export must have reached the EXPORTED state; exports that are
// still running (or have failed) produce an error so callers can poll
// and retry initialization later. File sizes are fetched via HEAD so
// GetProgress can report byte totals; a file whose size cannot be
// determined is still downloaded, it just doesn't count toward the
// total.
func (m *Manager) Initialize(ctx context.Context, exportID string) error {
	export, err := m.client.GetExport(ctx, exportID)
	if err != nil {
		return err
	}

	if export.Status != model.ExportExported {
		return fmt.Errorf("export %s is %s, not ready for download", exportID, export.Status)
	}

	files, err := m.client.ListExportFiles(ctx, exportID)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("export %s has no files", exportID)
	}

	destDir := filepath.Join(m.settings.ExportsPath, ioutils.SanitizeFileName(export.ID))
	if err := ioutils.EnsureDir(destDir); err != nil {
		return err
	}

	m.export = export
	m.files = m.files[:0]
	for _, file := range files {
		m.files = append(m.files, pendingFile{
			file: file,
			dest: filepath.Join(destDir, ioutils.SanitizeFileName(file.Name)),
		})
		m.progress(ProgressEvent{Message: fmt.Sprintf("Queued %s", file.Name), Level: LevelVerbose})
	}
	atomic.StoreInt32(&m.totalFiles, int32(len(m.files)))

	// Size files for byte totals
	var total int64
	for _, pf := range m.files {
		size, err := m.client.FileSize(ctx, pf.file.URL)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Could not size %s: %v", pf.file.Name, err), Level: LevelWarning})
			continue
		}
		total += size
	}
	atomic.StoreInt64(&m.totalBytes, total)

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Export %s: %d files, %.2f MB", export.ID, len(m.files), float64(total)/1024/1024),
		Level:   LevelInfo,
	})

	return nil
}

// StartDownloads fetches all initialized files concurrently.
//
// At most MaxConcurrentDownloads files are in flight at once. The first
// failure cancels the remaining downloads.
func (m *Manager) StartDownloads(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	limit := m.settings.MaxConcurrentDownloads
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, pf := range m.files {
		pf := pf // capture
		g.Go(func() error {
			return m.downloadFile(ctx, pf)
		})
	}

	return g.Wait()
}

// downloadFile fetches one export file and updates progress counters.
func (m *Manager) downloadFile(ctx context.Context, pf pendingFile) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading %s", pf.file.Name), Level: LevelVerbose})

	var last int64
	err := m.client.DownloadFile(ctx, pf.file.URL, pf.dest, func(written, total int64) {
		atomic.AddInt64(&m.receivedBytes, written-last)
		last = written
	})
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed %s: %v", pf.file.Name, err), Level: LevelError})
		return err
	}

	atomic.AddInt32(&m.downloadedFiles, 1)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s", pf.dest), Level: LevelSuccess})
	return nil
}

// GetProgress returns (receivedBytes, totalBytes, downloadedFiles, totalFiles).
func (m *Manager) GetProgress() (int64, int64, int32, int32) {
	return atomic.LoadInt64(&m.receivedBytes),
		atomic.LoadInt64(&m.totalBytes),
		atomic.LoadInt32(&m.downloadedFiles),
		atomic.LoadInt32(&m.totalFiles)
}

// FileNames returns the names of the files queued for download.
func (m *Manager) FileNames() []string {
	names := make([]string, 0, len(m.files))
	for _, pf := range m.files {
		names = append(names, pf.file.Name)
	}
	return names
}

// progress delivers an event to the callback, if one is registered.
// onProgress is set at construction and never mutated afterwards.
func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
