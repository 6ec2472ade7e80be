package util

import (
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig loads an optional config.yaml with generator defaults
// (generator.graph, generator.output, generator.count, generator.seed).
// CLI flags take precedence over config values.
func ReadConfig(dir string) error {
	viper.SetConfigName("config")
	viper.AddConfigPath(dir)

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
