// Package download coordinates fetching the files produced by a
// finished export job.
//
// The Manager resolves an export, verifies it has reached the EXPORTED
// state, sizes its files, and then downloads them concurrently with a
// bounded worker count. Progress is reported through a callback so the
// CLI and TUI can render it however they like:
//
//	manager := download.NewManager(settings, client, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx, exportID); err != nil {
//	    return err
//	}
//	if err := manager.StartDownloads(ctx); err != nil {
//	    return err
//	}
//
// There is no retry logic: a failed file download fails the whole run
// and surfaces to the caller.
package download
