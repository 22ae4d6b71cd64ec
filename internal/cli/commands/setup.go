package commands

import (
	"github.com/inkworks-labs/inkstudio/internal/cli/config"
)

// getConfig returns the config loaded by the root command, or an empty
// config when called before loading, such as in tests.
func getConfig() *config.Config {
	if c := config.GetCurrentConfig(); c != nil {
		return c
	}
	return &config.Config{}
}
