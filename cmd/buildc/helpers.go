package main

import (
	"os"

	"github.com/banksean/buildc/internal/builderr"
	"github.com/banksean/buildc/internal/config"
)

const configFileName = "config.txt"

// loadConfig reads config.txt from the current working directory. A project
// without one cannot build: run `buildc create <name>` first.
func loadConfig() (*config.ProjectConfig, error) {
	if _, err := os.Stat(configFileName); err != nil {
		return nil, builderr.NewConfig("no config.txt found in current directory; run `buildc create <name>` first", nil)
	}
	return config.Load(configFileName)
}
