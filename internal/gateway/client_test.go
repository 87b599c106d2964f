package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybridge/internal/infrastructure/config"
	"skybridge/internal/interfaces/http/handlers/testutil"
	"skybridge/internal/node"
	sharedConfig "skybridge/internal/shared/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: sharedConfig.ServerConfig{
			Host:     "127.0.0.1",
			BasePort: 8000,
		},
		Gateway: sharedConfig.GatewayConfig{
			QueueSize:      16,
			DiscoveryGrace: testGrace,
			FetchTimeout:   testTimeout,
		},
	}
}

func TestRunPropagatesBindFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Host = "256.0.0.1" // not a bindable address

	client := New(cfg, testutil.NewMockLogger())
	packets := make(chan node.Packet)
	defer close(packets)
	wire := make(chan node.Packet, 8)

	err := client.Run(1, nil, packets, wire)
	require.Error(t, err)
}

func TestWorkerExitShutsDownBridge(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Host = "256.0.0.1" // fail fast after the worker is spawned

	client := New(cfg, testutil.NewMockLogger())
	packets := make(chan node.Packet)
	wire := make(chan node.Packet, 8)

	require.Error(t, client.Run(1, nil, packets, wire))

	// Killing the transport ends the worker loop, which shuts the bridge down.
	close(packets)

	assert.Eventually(t, func() bool {
		return client.Channels().SendCommand(node.InitializeDiscovery{}) == ErrBridgeClosed
	}, time.Second, 10*time.Millisecond)
}
