package main

import (
	"os"

	"github.com/litscout/litscout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
