package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/taskdeck/pkg/commands/options"
	"tableflip.dev/taskdeck/pkg/config"
	"tableflip.dev/taskdeck/pkg/logging"
	"tableflip.dev/taskdeck/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	so := &options.ServerOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run a local server with the same REST API, for development",
		Example: `
taskdeck serve
taskdeck serve --addr :8080 --memory --latency 200ms
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logging.Server(cfg.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			s := serve.Serve{
				Addr:      so.Addr,
				StorePath: cfg.StorePath,
				Memory:    so.Memory,
				Latency:   so.Latency,
				Log:       log,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddServerArgs(cmd, so)
	cmd.Flags().String(config.KeyStore, "~/.taskdeck.db", "Directory holding the records.")
	bindFlags(cmd, config.KeyStore)

	topLevel.AddCommand(cmd)
}
