package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/taskdeck/pkg/commands/options"
	"tableflip.dev/taskdeck/pkg/prompt"
	"tableflip.dev/taskdeck/pkg/runner/add"
	teaui "tableflip.dev/taskdeck/pkg/tui/app"
)

func addAdd(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	i := &options.InteractiveOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "add <collection> [text]",
		Short: "add a task, goal or note",
		Example: `
taskdeck add task buy milk
taskdeck add goal "run 10k"
taskdeck add note -i
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a collection")
			}
			if err := co.ParseCollectionArg(args[0]); err != nil {
				return err
			}
			text = strings.Join(args[1:], " ")
			if text == "" && !i.Interactive {
				return errors.New("requires text, or -i to be prompted")
			}
			return nil
		},
		ValidArgsFunction: options.CompleteCollections,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if !i.Interactive || text != "" {
				return nil
			}
			var err error
			text, err = prompt.Text(options.PromptIO(cmd), co.Collection.Kind(), teaui.MaxInput)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := service()
			if err != nil {
				return err
			}
			a := add.Add{
				Service:    svc,
				Collection: co.Collection,
				Text:       text,
				Out:        cmd.OutOrStdout(),
			}
			return a.Do(cmd.Context())
		},
	}

	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
