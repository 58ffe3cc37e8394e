package web

import (
	"time"

	"github.com/wordsolverx/postermaker/internal/config"
)

// DefaultListenAddr is used when the config leaves server.listen empty.
const DefaultListenAddr = ":8080"

// ServerConfig contains settings for running the preview server.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
	// BaseURL prefixes the permalinks encoded into QR badges.
	BaseURL  string
	Location *time.Location
}

// ServerConfigFrom extracts the server settings from a validated config.
func ServerConfigFrom(cfg *config.Config) (ServerConfig, error) {
	loc, err := cfg.Location()
	if err != nil {
		return ServerConfig{}, err
	}
	listenAddr := cfg.Server.Listen
	if listenAddr == "" {
		listenAddr = DefaultListenAddr
	}
	return ServerConfig{
		ListenAddr: listenAddr,
		DevMode:    cfg.Server.Dev,
		BaseURL:    cfg.Site.BaseURL,
		Location:   loc,
	}, nil
}
