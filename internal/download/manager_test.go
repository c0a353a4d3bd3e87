package download

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/raster-foundry/raster-foundry-go-client/internal/config"
	"github.com/raster-foundry/raster-foundry-go-client/internal/foundry"
	"github.com/raster-foundry/raster-foundry-go-client/internal/model"
)

const testToken = "test-token"

// newExportServer serves one export in the given status along with its
// downloadable files.
func newExportServer(t *testing.T, status model.ExportStatus, files map[string][]byte) (*httptest.Server, string) {
	t.Helper()

	exportID := "export-1"
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/exports/"+exportID, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.Export{
			ID:        exportID,
			ProjectID: "p-1",
			Status:    status,
			Type:      model.ExportTypeLocal,
		})
	})

	var server *httptest.Server
	mux.HandleFunc("GET /api/exports/"+exportID+"/files", func(w http.ResponseWriter, r *http.Request) {
		var results []model.ExportFile
		for name := range files {
			results = append(results, model.ExportFile{
				Name: name,
				URL:  server.URL + "/files/" + name,
			})
		}
		json.NewEncoder(w).Encode(model.ExportFilePage{Results: results})
	})

	mux.HandleFunc("/files/{name}", func(w http.ResponseWriter, r *http.Request) {
		content, ok := files[r.PathValue("name")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(content)))
		if r.Method == http.MethodHead {
			return
		}
		w.Write(content)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, exportID
}

func newTestManager(t *testing.T, server *httptest.Server) (*Manager, *config.Settings) {
	t.Helper()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	client, err := foundry.New(context.Background(), foundry.Config{
		Host:     u.Host,
		Scheme:   "http",
		APIToken: testToken,
	})
	if err != nil {
		t.Fatal(err)
	}

	settings := config.DefaultSettings()
	settings.ExportsPath = t.TempDir()
	settings.MaxConcurrentDownloads = 2

	return NewManager(settings, client, nil), settings
}

func TestManager_DownloadsAllFiles(t *testing.T) {
	files := map[string][]byte{
		"scene-1.tif": []byte("tile data one"),
		"scene-2.tif": []byte("tile data two, longer"),
	}
	server, exportID := newExportServer(t, model.ExportExported, files)
	manager, settings := newTestManager(t, server)
	ctx := context.Background()

	if err := manager.Initialize(ctx, exportID); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if got := manager.FileNames(); len(got) != 2 {
		t.Fatalf("queued %d files, want 2", len(got))
	}

	if err := manager.StartDownloads(ctx); err != nil {
		t.Fatalf("StartDownloads failed: %v", err)
	}

	received, total, downloaded, totalFiles := manager.GetProgress()
	if downloaded != 2 || totalFiles != 2 {
		t.Errorf("files = %d/%d, want 2/2", downloaded, totalFiles)
	}

	var wantBytes int64
	for name, content := range files {
		wantBytes += int64(len(content))

		path := filepath.Join(settings.ExportsPath, exportID, name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected %s on disk: %v", path, err)
		}
		if string(data) != string(content) {
			t.Errorf("%s content = %q, want %q", name, data, content)
		}
	}

	if received != wantBytes {
		t.Errorf("receivedBytes = %d, want %d", received, wantBytes)
	}
	if total != wantBytes {
		t.Errorf("totalBytes = %d, want %d", total, wantBytes)
	}
}

func TestManager_RejectsUnfinishedExport(t *testing.T) {
	server, exportID := newExportServer(t, model.ExportExporting, map[string][]byte{
		"pending.tif": []byte("not ready"),
	})
	manager, _ := newTestManager(t, server)

	err := manager.Initialize(context.Background(), exportID)
	if err == nil {
		t.Fatal("expected error for export that is still running")
	}
}

func TestManager_ReportsProgressEvents(t *testing.T) {
	server, exportID := newExportServer(t, model.ExportExported, map[string][]byte{
		"scene.tif": []byte("payload"),
	})

	u, _ := url.Parse(server.URL)
	client, err := foundry.New(context.Background(), foundry.Config{
		Host:     u.Host,
		Scheme:   "http",
		APIToken: testToken,
	})
	if err != nil {
		t.Fatal(err)
	}

	settings := config.DefaultSettings()
	settings.ExportsPath = t.TempDir()

	var successes int
	manager := NewManager(settings, client, func(event ProgressEvent) {
		if event.Level == LevelSuccess {
			successes++
		}
	})

	ctx := context.Background()
	if err := manager.Initialize(ctx, exportID); err != nil {
		t.Fatal(err)
	}
	if err := manager.StartDownloads(ctx); err != nil {
		t.Fatal(err)
	}

	if successes != 1 {
		t.Errorf("success events = %d, want 1", successes)
	}
}
