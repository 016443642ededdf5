package config

import (
	"fmt"
	"time"
)

// ServerApp holds server-side application settings derived from the shared
// structured config.
type ServerApp struct {
	// PasswordHashKey is the secret key applied to stored auth hashes.
	PasswordHashKey string
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	TokenSignKey string
	// TokenIssuer is the "iss" claim embedded in every issued token.
	TokenIssuer string
	// TokenDuration is how long an issued token remains valid.
	TokenDuration time.Duration
	// Version is the application version string.
	Version string
}

// ServerConfig is the top-level server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	// App contains token and versioning settings.
	App ServerApp
	// Server contains listener addresses and timeouts.
	Server Server
	// Storage contains the server database settings.
	Storage DBConfig
}

// GetServerConfig builds and validates a server-specific config view from the
// merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App: ServerApp{
			PasswordHashKey: cfg.App.PasswordHashKey,
			TokenSignKey:    cfg.App.TokenSignKey,
			TokenIssuer:     cfg.App.TokenIssuer,
			TokenDuration:   cfg.App.TokenDuration,
			Version:         cfg.App.Version,
		},
		Server:  cfg.Server,
		Storage: cfg.Storage.DB,
	}

	if serverCfg.App.TokenDuration <= 0 {
		serverCfg.App.TokenDuration = time.Hour
	}
	if serverCfg.Server.HTTPAddress == "" {
		serverCfg.Server.HTTPAddress = "localhost:8080"
	}

	return serverCfg, serverCfg.validate()
}
