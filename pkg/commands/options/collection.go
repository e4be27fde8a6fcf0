// Package options defines shared flag and argument helpers for CLI commands.
package options

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/taskdeck/pkg/record"
)

// CollectionOptions captures the collection a command works on.
type CollectionOptions struct {
	Collection record.Collection
}

// ParseCollectionArg sets o from a positional argument.
func (o *CollectionOptions) ParseCollectionArg(arg string) error {
	c, err := record.ParseCollection(arg)
	if err != nil {
		return err
	}
	o.Collection = c
	return nil
}

// CollectionNames lists the collection names for shell completion.
func CollectionNames() []string {
	names := make([]string, 0, len(record.All))
	for _, c := range record.All {
		names = append(names, string(c))
	}
	return names
}

// CompleteCollections is a cobra ValidArgsFunction for the first argument.
func CompleteCollections(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return CollectionNames(), cobra.ShellCompDirectiveNoFileComp
}

// ParseID parses an item id argument.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
