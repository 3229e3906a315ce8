package main

import (
	"os"

	"github.com/vamshi455/bank-rag-system/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
