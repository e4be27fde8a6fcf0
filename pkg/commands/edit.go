package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/taskdeck/pkg/commands/options"
	"tableflip.dev/taskdeck/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	io := &options.IDOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "edit <collection> <id> <text>",
		Short: "replace the text of an item",
		Example: `
taskdeck edit task 3 buy oat milk
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 3 {
				return errors.New("requires a collection, an id and the new text")
			}
			if err := co.ParseCollectionArg(args[0]); err != nil {
				return err
			}
			var err error
			if io.ID, err = options.ParseID(args[1]); err != nil {
				return err
			}
			text = strings.Join(args[2:], " ")
			return nil
		},
		ValidArgsFunction: options.CompleteCollections,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := service()
			if err != nil {
				return err
			}
			e := edit.Edit{
				Service:    svc,
				Collection: co.Collection,
				ID:         io.ID,
				Text:       text,
				Out:        cmd.OutOrStdout(),
			}
			return e.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
