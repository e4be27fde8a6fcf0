package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/taskdeck/pkg/commands/options"
	"tableflip.dev/taskdeck/pkg/prompt"
	"tableflip.dev/taskdeck/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	hasID := false

	cmd := &cobra.Command{
		Use:     "rm <collection> [id]",
		Aliases: []string{"remove", "delete"},
		Short:   "remove an item",
		Example: `
taskdeck rm note 2
taskdeck rm task -i
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("requires a collection and an item id")
			}
			if err := co.ParseCollectionArg(args[0]); err != nil {
				return err
			}
			if len(args) == 1 {
				if !i.Interactive {
					return errors.New("requires an item id, or -i to pick one")
				}
				return nil
			}
			var err error
			io.ID, err = options.ParseID(args[1])
			hasID = err == nil
			return err
		},
		ValidArgsFunction: options.CompleteCollections,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := service()
			if err != nil {
				return err
			}
			if !hasID {
				recs, err := svc.List(cmd.Context(), co.Collection)
				if err != nil {
					return err
				}
				r, err := prompt.Record(options.PromptIO(cmd), co.Collection, recs)
				if err != nil {
					return err
				}
				io.ID = r.ID
			}
			r := remove.Remove{
				Service:    svc,
				Collection: co.Collection,
				ID:         io.ID,
				Out:        cmd.OutOrStdout(),
			}
			return r.Do(cmd.Context())
		},
	}

	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
