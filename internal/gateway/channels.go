// Package gateway bridges short-lived HTTP handlers to the single
// long-running node worker. It owns the command channel (handlers to
// worker) and the two result channels (worker to handlers), the
// fire-and-forget dispatch, and the two result-correlation protocols
// built on top: trigger-then-poll discovery and the timeout-bounded
// unread-message fetch.
package gateway

import (
	"errors"
	"sync"

	"skybridge/internal/node"
)

var (
	// ErrBridgeClosed reports that the worker's side of the bridge is
	// gone: the worker has terminated and will never consume another
	// command.
	ErrBridgeClosed = errors.New("gateway: bridge closed, worker unavailable")
	// ErrQueueFull reports that the command queue is saturated.
	ErrQueueFull = errors.New("gateway: command queue full")
)

// Channels holds the three queues of the bridge. The command queue is
// multi-producer single-consumer; the result queues are single-producer
// multi-consumer. A result is delivered to exactly one receiver, in the
// order the worker produced it. Concurrent same-kind requests therefore
// share one queue and may consume each other's results; see the
// regression tests before changing this.
type Channels struct {
	mu       sync.Mutex
	closed   bool
	commands chan node.Command

	discoveries chan node.DiscoveredNodes
	unread      chan node.UnreadMessages
}

// NewChannels creates all channels of the bridge with the given buffer size.
func NewChannels(size int) *Channels {
	if size <= 0 {
		size = 256
	}
	return &Channels{
		commands:    make(chan node.Command, size),
		discoveries: make(chan node.DiscoveredNodes, size),
		unread:      make(chan node.UnreadMessages, size),
	}
}

// SendCommand enqueues a command for the worker. It never blocks: after
// the bridge has shut down it returns ErrBridgeClosed, and when the
// buffer is exhausted it returns ErrQueueFull. Success means only that
// the command was queued, not that the worker will process it.
func (c *Channels) SendCommand(cmd node.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrBridgeClosed
	}
	select {
	case c.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Commands returns the consuming side of the command queue, owned by the worker.
func (c *Channels) Commands() <-chan node.Command {
	return c.commands
}

// Discoveries returns the consuming side of the discovery result queue.
func (c *Channels) Discoveries() <-chan node.DiscoveredNodes {
	return c.discoveries
}

// Unread returns the consuming side of the unread-messages result queue.
func (c *Channels) Unread() <-chan node.UnreadMessages {
	return c.unread
}

// PublishDiscovery puts a discovery result on its queue without
// blocking. Worker-side only. Implements node.ResultSink.
func (c *Channels) PublishDiscovery(nodes node.DiscoveredNodes) bool {
	select {
	case c.discoveries <- nodes:
		return true
	default:
		return false
	}
}

// PublishUnread puts an unread-messages result on its queue without
// blocking. Worker-side only. Implements node.ResultSink.
func (c *Channels) PublishUnread(msgs node.UnreadMessages) bool {
	select {
	case c.unread <- msgs:
		return true
	default:
		return false
	}
}

// Shutdown marks the bridge closed and closes every queue. Called once
// the worker's execution loop has exited (or to force it to exit:
// closing the command queue makes the worker return). Pending and
// future receivers observe closed result channels; future senders get
// ErrBridgeClosed. Idempotent.
func (c *Channels) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.commands)
	close(c.discoveries)
	close(c.unread)
}
