package main

import (
	"os"

	"github.com/mv1388/trainrun/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
