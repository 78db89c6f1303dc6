// Package tui renders a live table of helper state backed by tview.
package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/example/warden/internal/supervise"
)

const tableTitle = "Helpers"

// Option configures UI behaviour.
type Option func(*UI)

// WithRefreshInterval sets how often helper state is re-probed.
func WithRefreshInterval(d time.Duration) Option {
	return func(u *UI) {
		if d > 0 {
			u.interval = d
		}
	}
}

// UI coordinates the interactive helper status view.
type UI struct {
	app      *tview.Application
	table    *tview.Table
	sup      *supervise.Supervisor
	interval time.Duration
}

// New constructs a UI over the provided supervisor.
func New(sup *supervise.Supervisor, opts ...Option) *UI {
	app := tview.NewApplication()
	table := tview.NewTable().SetFixed(1, 0).SetSelectable(true, false)
	table.SetBorder(true).SetTitle(tableTitle)

	ui := &UI{
		app:      app,
		table:    table,
		sup:      sup,
		interval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(ui)
	}
	return ui
}

// Run drives the view until the context is cancelled or the user quits.
// `s` stops the selected helper gracefully, `K` force-kills it, `q` quits.
func (u *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	u.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q':
			u.app.Stop()
			return nil
		case 's':
			u.stopSelected(ctx, false)
			return nil
		case 'K':
			u.stopSelected(ctx, true)
			return nil
		}
		return event
	})

	go u.refreshLoop(ctx)
	go func() {
		<-ctx.Done()
		u.app.Stop()
	}()

	return u.app.SetRoot(u.table, true).Run()
}

func (u *UI) stopSelected(ctx context.Context, force bool) {
	row, _ := u.table.GetSelection()
	if row < 1 {
		return
	}
	names := u.sup.Names()
	if row-1 >= len(names) {
		return
	}
	name := names[row-1]
	go func() {
		_, _ = u.sup.Kill(ctx, name, force)
		u.refresh(ctx)
	}()
}

func (u *UI) refreshLoop(ctx context.Context) {
	u.refresh(ctx)
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.refresh(ctx)
		}
	}
}

func (u *UI) refresh(ctx context.Context) {
	infos := u.sup.CheckAll(ctx)
	names := u.sup.Names()
	u.app.QueueUpdateDraw(func() {
		u.render(names, infos)
	})
}

func (u *UI) render(names []string, infos map[string]supervise.Info) {
	headers := []string{"HELPER", "STATE", "PID", "COMMAND"}
	for col, header := range headers {
		cell := tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false)
		u.table.SetCell(0, col, cell)
	}
	for i, name := range names {
		cells := rowCells(infos[name])
		for col, text := range cells {
			color := tcell.ColorWhite
			if col == 1 && infos[name].Running {
				color = tcell.ColorGreen
			}
			u.table.SetCell(i+1, col, tview.NewTableCell(text).SetTextColor(color))
		}
	}
}

// rowCells converts a probe result into the four display columns.
func rowCells(info supervise.Info) []string {
	state := supervise.GlyphStopped + " stopped"
	pid := "-"
	command := "-"
	if info.Running {
		state = supervise.GlyphRunning + " running"
		pid = strconv.Itoa(info.PID)
		if info.Command != "" {
			command = info.Command
		}
	}
	return []string{info.Name, state, pid, command}
}
