package options

import (
	"encoding/json"
	"fmt"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
)

// HandleError reports err on the command's output as {"error": "..."} when
// JSON output was requested, so scripts always get JSON. Otherwise err is
// returned for cobra to print.
func HandleError(cmd *cobra.Command, o *base.OutputOptions, err error) error {
	if o == nil || !o.JSON || err == nil {
		return err
	}
	b, merr := json.Marshal(map[string]string{"error": err.Error()})
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
