package main

import (
	"os"

	"github.com/gamezonia/gzone/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
