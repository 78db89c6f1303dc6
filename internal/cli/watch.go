package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/example/warden/internal/tui"
)

func newWatchCmd(ctx *context) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live view of helper state",
		RunE: func(cmd *cobra.Command, args []string) error {
			sup, err := ctx.getSupervisor()
			if err != nil {
				return err
			}
			ui := tui.New(sup, tui.WithRefreshInterval(interval))
			return ui.Run(cmd.Context())
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Refresh interval for the live view")
	return cmd
}
