package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/taskdeck/pkg/commands/options"
	"tableflip.dev/taskdeck/pkg/record"
	"tableflip.dev/taskdeck/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	io := &options.IDOptions{}
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "get [collection]",
		Aliases: []string{"ls", "list"},
		Short:   "print tasks, goals and notes",
		Example: `
taskdeck get
taskdeck get tasks --show-id
taskdeck get notes --json
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return cobra.MaximumNArgs(1)(nil, args)
			}
			if len(args) == 1 {
				return co.ParseCollectionArg(args[0])
			}
			return nil
		},
		ValidArgsFunction: options.CompleteCollections,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := service()
			if err != nil {
				return options.HandleError(cmd, oo, err)
			}
			g := get.Get{
				Service: svc,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			if co.Collection != "" {
				g.Collections = []record.Collection{co.Collection}
			}
			return options.HandleError(cmd, oo, g.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
