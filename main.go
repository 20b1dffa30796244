package main

import (
	"os"

	"github.com/spigell/hiring-assistant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
