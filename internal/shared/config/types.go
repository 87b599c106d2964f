// Package config defines the configuration struct types shared across layers.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	BasePort int    `mapstructure:"base_port"`
	Mode     string `mapstructure:"mode"`
}

// Addr returns the listen address for the given node identity.
// The gateway binds to base_port + node id, one port per local node.
func (s *ServerConfig) Addr(nodeID uint8) string {
	return fmt.Sprintf("%s:%d", s.Host, s.BasePort+int(nodeID))
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// GatewayConfig holds the gateway bridge configuration.
type GatewayConfig struct {
	NodeID uint8 `mapstructure:"node_id"`
	// DiscoveryGrace is the blind delay between triggering a discovery
	// sweep and fetching its outcome. The worker exposes no completion
	// signal, so the protocol substitutes a fixed wait.
	DiscoveryGrace time.Duration `mapstructure:"discovery_grace"`
	// FetchTimeout bounds the wait for an unread-messages result.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	// QueueSize is the buffer size of the command and result queues.
	QueueSize int `mapstructure:"queue_size"`
	// StaticDir is the directory holding the web front end.
	StaticDir string `mapstructure:"static_dir"`
}
