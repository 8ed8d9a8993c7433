package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotbrew/cmd/dotbrew"
	"github.com/arthur-debert/dotbrew/internal/version"
)

// Writes dotbrew.1 to stdout, or one page per command into -dir
func main() {
	dir := flag.String("dir", "", "write one man page per command into this directory")
	flag.Parse()

	rootCmd := dotbrew.NewRootCmd()
	header := &doc.GenManHeader{
		Title:   "DOTBREW",
		Section: "1",
		Source:  "dotbrew " + version.Version,
		Manual:  "dotbrew manual",
	}

	var err error
	if *dir != "" {
		err = doc.GenManTree(rootCmd, header, *dir)
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
