package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/taskdeck/pkg/prompt"
)

// InteractiveOptions ask for missing arguments with prompts.
type InteractiveOptions struct {
	Interactive bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Prompt for anything not given as an argument.`)
}

// PromptIO wires prompts to the command's input and output.
func PromptIO(cmd *cobra.Command) prompt.IO {
	return prompt.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
}
