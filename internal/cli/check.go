package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/warden/internal/supervise"
)

func newCheckCmd(ctx *context) *cobra.Command {
	return &cobra.Command{
		Use:   "check <helper>",
		Short: "Probe a single helper and report its state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sup, err := ctx.getSupervisor()
			if err != nil {
				return err
			}
			info := sup.Check(cmd.Context(), args[0])
			fmt.Fprintln(cmd.OutOrStdout(), supervise.FormatInfo(info))
			if !info.Running {
				return errNotRunning
			}
			return nil
		},
	}
}
