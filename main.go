package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/chazu/crossing/internal/logger"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	if err := logger.Initialize(false, os.Getenv("CROSSING_DEBUG") != ""); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	defer logger.Cleanup()

	app := NewApp()

	err := wails.Run(&options.App{
		Title:  "crossing",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 24, G: 26, B: 30, A: 1},
		OnStartup:        app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logger.Logger.Errorw("wails exited", "error", err)
		os.Exit(1)
	}
}
