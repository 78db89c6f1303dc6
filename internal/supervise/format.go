package supervise

import "fmt"

const (
	// GlyphRunning marks a running helper in formatted output.
	GlyphRunning = "●"
	// GlyphStopped marks a stopped helper in formatted output.
	GlyphStopped = "○"
)

// FormatInfo renders a one-line status summary for a helper process. The pid
// is included only when the helper is running.
func FormatInfo(info Info) string {
	if info.Running {
		return fmt.Sprintf("%s %s: running (pid %d)", GlyphRunning, info.Name, info.PID)
	}
	return fmt.Sprintf("%s %s: stopped", GlyphStopped, info.Name)
}
