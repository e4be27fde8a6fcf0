package options

import (
	"time"

	"github.com/spf13/cobra"
)

// ServerOptions configure the local stand-in server.
type ServerOptions struct {
	Addr    string
	Memory  bool
	Latency time.Duration
}

func AddServerArgs(cmd *cobra.Command, o *ServerOptions) {
	cmd.Flags().StringVar(&o.Addr, "addr", ":3000",
		"Address to listen on.")
	cmd.Flags().BoolVar(&o.Memory, "memory", false,
		"Keep records in memory instead of the store directory.")
	cmd.Flags().DurationVar(&o.Latency, "latency", 0,
		"Delay every response, to see the UI under a slow server.")
}
