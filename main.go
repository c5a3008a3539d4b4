package main

import (
	"os"

	"github.com/ecarvalho/aulaplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
