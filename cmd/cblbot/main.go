package main

import (
	"os"

	"cblbot/cmd/cblbot/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
