package main

import (
	"os"

	"github.com/arthur-debert/dotbrew/cmd/dotbrew"
	"github.com/arthur-debert/dotbrew/pkg/display"
)

func main() {
	rootCmd := dotbrew.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if renderer, rerr := display.NewRenderer(display.FormatAuto, os.Stderr); rerr == nil {
			_ = renderer.RenderError(err)
		}
		os.Exit(1)
	}
}
