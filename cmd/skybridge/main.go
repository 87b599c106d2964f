package main

import (
	"os"

	"github.com/spf13/cobra"

	"skybridge/internal/interfaces/cli/gateway"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skybridge",
		Short: "Skybridge - local web gateway for a mesh-network node",
		Long:  `Skybridge bridges a web client to a single long-running mesh-network node worker.`,
	}

	rootCmd.AddCommand(
		gateway.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
