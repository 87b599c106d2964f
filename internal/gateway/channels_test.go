package gateway

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybridge/internal/node"
)

func TestSendCommandQueuesInFIFOOrder(t *testing.T) {
	ch := NewChannels(8)

	require.NoError(t, ch.SendCommand(node.InitializeDiscovery{}))
	require.NoError(t, ch.SendCommand(node.FetchDiscoveredNodes{}))
	require.NoError(t, ch.SendCommand(node.FetchUnreadMessages{}))

	assert.IsType(t, node.InitializeDiscovery{}, <-ch.Commands())
	assert.IsType(t, node.FetchDiscoveredNodes{}, <-ch.Commands())
	assert.IsType(t, node.FetchUnreadMessages{}, <-ch.Commands())
}

func TestSendCommandAfterShutdownReturnsBridgeClosed(t *testing.T) {
	ch := NewChannels(8)
	ch.Shutdown()

	err := ch.SendCommand(node.InitializeDiscovery{})
	assert.ErrorIs(t, err, ErrBridgeClosed)
}

func TestSendCommandNeverBlocksWhenQueueFull(t *testing.T) {
	ch := NewChannels(1)

	require.NoError(t, ch.SendCommand(node.InitializeDiscovery{}))
	err := ch.SendCommand(node.InitializeDiscovery{})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestShutdownIsIdempotent(t *testing.T) {
	ch := NewChannels(8)
	ch.Shutdown()
	assert.NotPanics(t, func() { ch.Shutdown() })
}

func TestShutdownClosesResultChannels(t *testing.T) {
	ch := NewChannels(8)
	ch.Shutdown()

	_, ok := <-ch.Discoveries()
	assert.False(t, ok)
	_, ok2 := <-ch.Unread()
	assert.False(t, ok2)
}

func TestPublishDiscoveryDropsWhenFull(t *testing.T) {
	ch := NewChannels(1)

	assert.True(t, ch.PublishDiscovery(node.DiscoveredNodes{}))
	assert.False(t, ch.PublishDiscovery(node.DiscoveredNodes{}))
}

// Each result goes to exactly one receiver: queue semantics, not broadcast.
func TestResultDeliveredToExactlyOneReceiver(t *testing.T) {
	ch := NewChannels(8)

	const results = 4
	for i := 0; i < results; i++ {
		require.True(t, ch.PublishDiscovery(node.DiscoveredNodes{{ID: node.ID(i), Kind: node.KindServer}}))
	}
	ch.Shutdown()

	var mu sync.Mutex
	received := map[node.ID]int{}

	var wg sync.WaitGroup
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for nodes := range ch.Discoveries() {
				mu.Lock()
				received[nodes[0].ID]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, received, results)
	for id, count := range received {
		assert.Equalf(t, 1, count, "result %d delivered %d times", id, count)
	}
}
