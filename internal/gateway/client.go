package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"skybridge/internal/infrastructure/config"
	httpiface "skybridge/internal/interfaces/http"
	"skybridge/internal/node"
	"skybridge/internal/shared/goroutine"
	"skybridge/internal/shared/logger"
)

// Client orchestrates the gateway: it owns the channel bundle, starts
// the worker on its own goroutine, and serves the HTTP front end.
type Client struct {
	cfg *config.Config
	ch  *Channels
	log logger.Interface

	mu  sync.Mutex
	srv *http.Server
}

// New creates the command channel and both result channels and returns
// the handle owning every endpoint needed to start the worker and the
// front end.
func New(cfg *config.Config, log logger.Interface) *Client {
	return &Client{
		cfg: cfg,
		ch:  NewChannels(cfg.Gateway.QueueSize),
		log: log.Named("client"),
	}
}

// Channels exposes the bridge, mainly for tests and embedding callers.
func (c *Client) Channels() *Channels {
	return c.ch
}

// Run starts the worker and then serves HTTP until the serving loop
// terminates or fails; a bind failure is returned to the caller.
//
// The worker goroutine is spawned and never joined. If its loop exits
// or panics the bridge shuts down, every subsequent dispatch degrades
// to backend-unavailable, and HTTP keeps serving against the dead
// worker; the process does not recover it.
func (c *Client) Run(id node.ID, events chan node.Event, packets <-chan node.Packet, wire chan<- node.Packet) error {
	worker, err := node.NewWorker(id, events, packets, wire, c.ch.Commands(), c.ch, c.log)
	if err != nil {
		return err
	}

	goroutine.SafeGo(c.log, "node-worker", func() {
		defer c.ch.Shutdown()
		worker.Run()
	})

	svc := NewService(c.ch, id, c.cfg.Gateway.DiscoveryGrace, c.cfg.Gateway.FetchTimeout, c.log)

	router := httpiface.NewRouter(svc, events, c.cfg.Gateway.StaticDir, c.log)
	router.SetupRoutes()

	addr := c.cfg.Server.Addr(uint8(id))
	srv := &http.Server{
		Addr:    addr,
		Handler: router.Engine(),
		// No WriteTimeout: /flood legitimately holds a response across
		// the discovery grace period, /messages across the fetch timeout.
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	c.mu.Lock()
	c.srv = srv
	c.mu.Unlock()

	c.log.Infow("gateway serving", "address", addr, "node_id", id)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully. The worker is left to its
// own devices, consistent with the unsupervised lifecycle above.
func (c *Client) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	srv := c.srv
	c.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
