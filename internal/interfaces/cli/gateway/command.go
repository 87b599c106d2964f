// Package gateway implements the CLI command that runs the gateway process.
package gateway

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"skybridge/internal/gateway"
	"skybridge/internal/infrastructure/config"
	"skybridge/internal/node"
	"skybridge/internal/shared/goroutine"
	"skybridge/internal/shared/logger"
)

var (
	env    string
	nodeID int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Start the node gateway",
		Long:  `Start the local web gateway for one mesh-network node.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().IntVar(&nodeID, "node-id", -1, "Node identity override (0-255)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if nodeID >= 0 {
		if nodeID > 255 {
			return fmt.Errorf("node id %d out of range", nodeID)
		}
		cfg.Gateway.NodeID = uint8(nodeID)
	}
	identity := node.ID(cfg.Gateway.NodeID)

	logger.Info("starting gateway",
		"environment", env,
		"node_id", identity,
		"address", cfg.Server.Addr(uint8(identity)))

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	log := logger.NewLogger()

	// Transport attachment point. A deployment embeds the gateway into a
	// network bootstrapper that hands the worker live packet channels;
	// standalone, the wire side is drained so the worker never stalls.
	events := make(chan node.Event, 64)
	packets := make(chan node.Packet, 64)
	wire := make(chan node.Packet, 64)
	goroutine.SafeGo(log, "wire-drain", func() {
		for range wire {
		}
	})
	logger.Warn("no mesh transport attached, running standalone")

	client := gateway.New(cfg, log)

	errCh := make(chan error, 1)
	goroutine.SafeGo(log, "gateway-run", func() {
		errCh <- client.Run(identity, events, packets, wire)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("gateway failed", "error", err)
			return err
		}
		return nil
	case <-quit:
	}

	logger.Info("shutting down gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.Shutdown(ctx); err != nil {
		logger.Error("gateway forced to shutdown", "error", err)
		return err
	}

	logger.Info("gateway exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
