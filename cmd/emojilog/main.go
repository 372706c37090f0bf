package main

import (
	"os"

	"github.com/ariel-frischer/emojilog/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
