package main

import (
	"os"

	"github.com/pvginkel/gitblit-mcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
