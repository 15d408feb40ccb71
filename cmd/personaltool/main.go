package main

import (
	"os"

	"github.com/MikeTheGreat/PersonalTool/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
