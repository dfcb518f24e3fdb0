package main

import (
	"os"

	"github.com/maple-budget/maple/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
