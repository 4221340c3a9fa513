// ABOUTME: Interactive grid subcommand
// ABOUTME: Runs the bubbletea deals grid and saves preferences on every view change
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/harperreed/dealgrid/grid"
	"github.com/harperreed/dealgrid/prefs"
	"github.com/harperreed/dealgrid/tui"
)

// TUICommand runs the interactive grid. Logs go to dealgrid.log in dataDir while
// the alternate screen is active.
func TUICommand(ctx context.Context, g *grid.Grid, manager *prefs.Manager, dataDir string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal")
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	logPath := filepath.Join(dataDir, "dealgrid.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	g.OnChange(func(p prefs.Preferences) {
		if err := manager.Save(ctx, p); err != nil {
			log.Warn("failed to save preferences", "err", err)
		}
	})
	defer g.OnChange(nil)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	program := tea.NewProgram(
		tui.NewModel(g, tui.WithExportDir(cwd)),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
