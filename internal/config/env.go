// Package config loads the game configuration from YAML and the environment.
package config

import "os"

// Environment variables read by the binaries.
const (
	EnvConfigPath = "SPACESHIP_CONFIG"
	EnvAssets     = "SPACESHIP_ASSETS"
	EnvFont       = "SPACESHIP_FONT"
	EnvMusic      = "SPACESHIP_MUSIC"
	EnvSSHHost    = "SSH_HOST"
	EnvSSHPort    = "SSH_PORT"
	EnvSSHHostKey = "SSH_HOST_KEY"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// applyEnv overrides file values with any environment variables that are set.
func applyEnv(cfg *Config) {
	cfg.Assets.Dir = GetEnv(EnvAssets, cfg.Assets.Dir)
	cfg.Assets.FontPath = GetEnv(EnvFont, cfg.Assets.FontPath)
	cfg.Audio.MusicPath = GetEnv(EnvMusic, cfg.Audio.MusicPath)
	cfg.SSH.Host = GetEnv(EnvSSHHost, cfg.SSH.Host)
	cfg.SSH.Port = GetEnv(EnvSSHPort, cfg.SSH.Port)
	cfg.SSH.HostKeyPath = GetEnv(EnvSSHHostKey, cfg.SSH.HostKeyPath)
}
