package cli

import (
	"errors"
	"fmt"
	"time"

	units "github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/example/warden/internal/supervise"
)

func newStopCmd(ctx *context) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "stop [helper...]",
		Short: "Stop managed helpers, escalating to a forced kill when needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			sup, err := ctx.getSupervisor()
			if err != nil {
				return err
			}

			start := time.Now()
			names := args
			var outcomes map[string]supervise.KillResult
			if len(names) == 0 {
				names = sup.Names()
				outcomes = sup.KillAll(cmd.Context(), force)
			} else {
				outcomes = make(map[string]supervise.KillResult, len(names))
				for _, name := range names {
					dispatched, err := sup.Kill(cmd.Context(), name, force)
					outcomes[name] = supervise.KillResult{Dispatched: dispatched, Err: err}
				}
			}

			out := cmd.OutOrStdout()
			stopped := 0
			var errs []error
			for _, name := range names {
				result := outcomes[name]
				switch {
				case result.Err != nil:
					fmt.Fprintf(out, "%s: %v\n", name, result.Err)
					errs = append(errs, fmt.Errorf("%s: %w", name, result.Err))
				case result.Dispatched:
					fmt.Fprintf(out, "%s: termination dispatched\n", name)
					stopped++
				default:
					fmt.Fprintf(out, "%s: no matching process\n", name)
				}
			}
			fmt.Fprintf(out, "Signalled %d of %d helper(s) in %s\n",
				stopped, len(names), units.HumanDuration(time.Since(start)))
			return errors.Join(errs...)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Send the forced kill signal immediately")
	return cmd
}
