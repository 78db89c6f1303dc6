package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/example/warden/internal/supervise"
)

// statusRecord is the JSON shape emitted by `status --json`.
type statusRecord struct {
	Helper  string `json:"helper"`
	Running bool   `json:"running"`
	PID     int    `json:"pid,omitempty"`
	Command string `json:"command,omitempty"`
}

func newStatusCmd(ctx *context) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Display the state of every managed helper",
		RunE: func(cmd *cobra.Command, args []string) error {
			sup, err := ctx.getSupervisor()
			if err != nil {
				return err
			}
			infos := sup.CheckAll(cmd.Context())

			out := cmd.OutOrStdout()
			if asJSON {
				return writeStatusJSON(out, sup.Names(), infos)
			}

			glyphs := isTerminal(out)
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HELPER\tSTATE\tPID\tCOMMAND")
			for _, name := range sup.Names() {
				info := infos[name]
				state := "stopped"
				pid := "-"
				command := "-"
				if info.Running {
					state = "running"
					pid = strconv.Itoa(info.PID)
					if info.Command != "" {
						command = info.Command
					}
				}
				if glyphs {
					state = statusGlyph(info.Running) + " " + state
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, state, pid, command)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit status as JSON records")
	return cmd
}

func writeStatusJSON(out io.Writer, names []string, infos map[string]supervise.Info) error {
	records := make([]statusRecord, 0, len(names))
	for _, name := range names {
		info := infos[name]
		record := statusRecord{Helper: name, Running: info.Running}
		if info.Running {
			record.PID = info.PID
			record.Command = info.Command
		}
		records = append(records, record)
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func statusGlyph(running bool) string {
	if running {
		return supervise.GlyphRunning
	}
	return supervise.GlyphStopped
}

// isTerminal reports whether the writer is attached to an interactive
// terminal. Decorative glyphs are reserved for interactive output so piped
// status stays plain.
func isTerminal(w io.Writer) bool {
	type fder interface{ Fd() uintptr }
	f, ok := w.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}
