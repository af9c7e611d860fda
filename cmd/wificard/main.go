package main

import (
	"os"

	"github.com/keyxmakerx/wificard/cmd/wificard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
