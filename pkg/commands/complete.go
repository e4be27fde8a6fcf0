package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/taskdeck/pkg/commands/options"
	"tableflip.dev/taskdeck/pkg/record"
	"tableflip.dev/taskdeck/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	topLevel.AddCommand(
		completeCommand("complete", []string{"done"}, "mark a task or goal complete", true),
		completeCommand("uncomplete", []string{"undo", "reopen"}, "mark a task or goal not complete", false),
	)
}

func completeCommand(use string, aliases []string, short string, done bool) *cobra.Command {
	co := &options.CollectionOptions{}
	io := &options.IDOptions{}

	return &cobra.Command{
		Use:     use + " <collection> <id>",
		Aliases: aliases,
		Short:   short,
		Example: `
taskdeck ` + use + ` task 3
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a collection and an item id")
			}
			if err := co.ParseCollectionArg(args[0]); err != nil {
				return err
			}
			if !co.Collection.HasCompletion() {
				return errors.New(co.Collection.Title() + " can not be completed")
			}
			var err error
			io.ID, err = options.ParseID(args[1])
			return err
		},
		ValidArgs: []string{string(record.Tasks), string(record.Goals)},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := service()
			if err != nil {
				return err
			}
			s := complete.Complete{
				Service:    svc,
				Collection: co.Collection,
				ID:         io.ID,
				Done:       done,
				Out:        cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}
}
