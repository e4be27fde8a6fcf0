package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"tableflip.dev/taskdeck/pkg/app"
	"tableflip.dev/taskdeck/pkg/config"
	"tableflip.dev/taskdeck/pkg/logging"
	"tableflip.dev/taskdeck/pkg/remote"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use: "taskdeck",
		Short: base.Wrap80("Tasks, goals and notes from a REST server, in the terminal."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(config.KeyURL, "http://localhost:3000", "Base URL of the server.")
	flags.Duration(config.KeyTimeout, remote.DefaultTimeout, "Per-request timeout.")
	flags.Bool(config.KeyDebug, false, "Verbose logging.")
	for _, key := range []string{config.KeyURL, config.KeyTimeout, config.KeyDebug} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addGet(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addComplete(topLevel)
	addRemove(topLevel)
	addServe(topLevel)
	addVersion(topLevel)
}

// service resolves the config and connects to the server for one-shot
// commands. Client warnings go to stderr.
func service() (*app.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.Console(cfg.Debug)
	if err != nil {
		log = zap.NewNop()
	}
	client, err := remote.New(cfg.URL, remote.WithTimeout(cfg.Timeout), remote.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return app.New(client), cfg, nil
}

// bindFlags lets the named flags of cmd override config file and env values.
func bindFlags(cmd *cobra.Command, keys ...string) {
	for _, key := range keys {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(key))
	}
}
