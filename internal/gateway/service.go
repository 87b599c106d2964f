package gateway

import (
	"time"

	"skybridge/internal/node"
	"skybridge/internal/shared/errors"
	"skybridge/internal/shared/logger"
)

// Service implements the command/response protocols handlers invoke.
// Every method may run on any number of goroutines concurrently; the
// only shared state is the channel bundle itself.
type Service struct {
	ch     *Channels
	nodeID node.ID
	// grace is the blind delay between triggering a discovery sweep and
	// fetching its outcome. Not an event wait: the worker exposes no
	// completion signal, so the protocol sleeps and hopes the sweep is done.
	grace        time.Duration
	fetchTimeout time.Duration
	log          logger.Interface
}

// NewService wires the protocol layer onto a channel bundle.
func NewService(ch *Channels, nodeID node.ID, grace, fetchTimeout time.Duration, log logger.Interface) *Service {
	if grace <= 0 {
		grace = 2 * time.Second
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 3 * time.Second
	}
	return &Service{
		ch:           ch,
		nodeID:       nodeID,
		grace:        grace,
		fetchTimeout: fetchTimeout,
		log:          log.Named("gateway"),
	}
}

// NodeID returns this gateway's node identity.
func (s *Service) NodeID() node.ID {
	return s.nodeID
}

// Dispatch enqueues a command, fire and forget. Enqueue failure of any
// kind means the worker cannot be reached and maps to an unavailable error.
func (s *Service) Dispatch(cmd node.Command) error {
	if err := s.ch.SendCommand(cmd); err != nil {
		s.log.Warnw("command dispatch failed", "error", err)
		return errors.NewUnavailableError("Failed to send request to the backend", err.Error())
	}
	return nil
}

// SendChat wraps an application message in a send-message command and
// dispatches it. The caller never learns whether the target received it.
func (s *Service) SendChat(msg node.Message) error {
	return s.Dispatch(node.SendMessage{Message: msg})
}

// DiscoverServers runs the trigger-then-poll discovery protocol and
// returns the identifiers of reachable server nodes, in discovery order.
//
// The sweep has no completion signal, so after triggering it the
// protocol waits the fixed grace period before asking for the outcome,
// then blocks until the worker answers. With concurrent callers the
// result consumed here may belong to another caller's fetch; the result
// queue is shared, not a per-request mailbox.
func (s *Service) DiscoverServers() ([]node.ID, error) {
	if err := s.Dispatch(node.InitializeDiscovery{}); err != nil {
		return nil, err
	}

	time.Sleep(s.grace)

	if err := s.Dispatch(node.FetchDiscoveredNodes{}); err != nil {
		return nil, err
	}

	nodes, ok := <-s.ch.Discoveries()
	if !ok {
		return nil, errors.NewUnavailableError("Failed to receive answer from the backend")
	}

	ids := make([]node.ID, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == node.KindServer {
			ids = append(ids, n.ID)
		}
	}
	return ids, nil
}

// UnreadMessages runs the timeout-bounded fetch protocol. A non-nil
// error is returned only when the command could not be enqueued. An
// empty (or nil) slice with a nil error covers three indistinguishable
// outcomes: the worker reported no messages, the worker is gone, or it
// did not answer within the timeout.
func (s *Service) UnreadMessages() ([]node.Message, error) {
	if err := s.Dispatch(node.FetchUnreadMessages{}); err != nil {
		return nil, err
	}

	timeout := time.NewTimer(s.fetchTimeout)
	defer timeout.Stop()

	select {
	case msgs, ok := <-s.ch.Unread():
		if !ok {
			return nil, nil
		}
		return msgs, nil
	case <-timeout.C:
		s.log.Debugw("unread fetch timed out", "timeout", s.fetchTimeout)
		return nil, nil
	}
}
