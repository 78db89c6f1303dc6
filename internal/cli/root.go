package cli

import (
	stdcontext "context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/warden/internal/config"
	"github.com/example/warden/internal/execx"
	"github.com/example/warden/internal/supervise"
)

// errNotRunning signals a clean "helper is stopped" exit without an error
// message.
var errNotRunning = errors.New("helper is not running")

func NewRootCmd() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *context) {
	var manifestFile string

	root := &cobra.Command{
		Use:   "warden",
		Short: "Supervise the editor helper processes",
		Long: "warden inspects and stops the named helper processes spawned for the " +
			"host tool: the language-analysis server and its completion server/client pair.",
	}

	root.PersistentFlags().
		StringVarP(&manifestFile, "file", "f", "warden.yaml", "Path to helper manifest")

	ctx := &context{manifestFile: &manifestFile}
	root.AddCommand(newStatusCmd(ctx))
	root.AddCommand(newCheckCmd(ctx))
	root.AddCommand(newStopCmd(ctx))
	root.AddCommand(newWatchCmd(ctx))

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, ctx
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.SetContext(ctx)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errNotRunning) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

type context struct {
	manifestFile *string
	supervisor   *supervise.Supervisor
}

func (c *context) getSupervisor() (*supervise.Supervisor, error) {
	if c.supervisor != nil {
		return c.supervisor, nil
	}
	manifest, err := config.LoadOrDefault(*c.manifestFile)
	if err != nil {
		return nil, err
	}
	backend := supervise.NewBackend(execx.New(),
		supervise.WithSettleDelay(manifest.Settle.Duration))
	sup, err := supervise.NewSupervisor(backend, manifest.Helpers)
	if err != nil {
		return nil, err
	}
	c.supervisor = sup
	return sup, nil
}
