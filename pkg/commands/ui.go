package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/taskdeck/pkg/config"
	"tableflip.dev/taskdeck/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	watch := true
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
taskdeck ui
taskdeck ui --url http://localhost:3000 --fps 60
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			i := ui.UI{Config: cfg, Watch: watch}
			return i.Do(cmd.Context())
		},
	}

	cmd.Flags().Int(config.KeyFPS, 30, "Frames per second.")
	cmd.Flags().Duration(config.KeyRefresh, 0, "Minimum time between refreshes; 0 refreshes every frame.")
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload timings when the config file changes.")
	bindFlags(cmd, config.KeyFPS, config.KeyRefresh)

	topLevel.AddCommand(cmd)
}
