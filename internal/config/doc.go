// Package config loads and saves client settings.
//
// Settings are stored as a JSON file; a missing file yields defaults so
// first runs work without any setup beyond supplying a token:
//
//	settings, err := config.Load("~/.config/rf/settings.json")
//	settings.RefreshToken = token
//	err = settings.Save(path)
//
// ToClientConfig bridges settings into the foundry client's Config so
// the CLI and TUI construct clients the same way.
package config
