package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/raster-foundry/raster-foundry-go-client/internal/config"
	"github.com/raster-foundry/raster-foundry-go-client/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	if settings.APIToken == "" && settings.RefreshToken == "" {
		settings.RefreshToken = os.Getenv("RF_REFRESH_TOKEN")
		settings.APIToken = os.Getenv("RF_API_TOKEN")
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
