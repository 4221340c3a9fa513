// ABOUTME: Entry point for the dealgrid CLI, TUI and MCP server
// ABOUTME: Loads configuration and saved preferences, then routes to a command
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harperreed/dealgrid/cli"
	"github.com/harperreed/dealgrid/columns"
	"github.com/harperreed/dealgrid/config"
	"github.com/harperreed/dealgrid/grid"
	"github.com/harperreed/dealgrid/store"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dataDir := flag.String("data-dir", "", "Data directory (default: ~/.local/share/dealgrid)")
	prefsBackend := flag.String("prefs-backend", "", "Preferences backend: badger, sqlite or memory (default: badger)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (default: info)")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("dealgrid version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *prefsBackend != "" {
		cfg.PrefsBackend = *prefsBackend
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	if err := config.SetupLogger(cfg.LogLevel); err != nil {
		log.Fatal("failed to set up logging", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, args); err != nil {
		stop()
		log.Fatal("command failed", "err", err)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string) error {
	reg := columns.Default()
	manager, err := config.OpenPreferences(ctx, cfg, reg)
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	defer func() {
		if err := manager.Close(); err != nil {
			log.Warn("failed to close preferences", "err", err)
		}
	}()

	log.Debug("starting", "data_dir", cfg.DataDir, "prefs_backend", cfg.PrefsBackend)

	g := grid.New(store.NewSample(), reg, manager.Load(ctx))

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		return cli.MCPCommand(ctx, g, version)

	case "tui":
		return cli.TUICommand(ctx, g, manager, cfg.DataDir)

	case "deals":
		if len(commandArgs) == 0 {
			printUsage()
			return fmt.Errorf("deals requires a subcommand")
		}
		switch commandArgs[0] {
		case "list":
			return cli.ListDealsCommand(g, commandArgs[1:], os.Stdout)
		case "totals":
			return cli.DealTotalsCommand(g, commandArgs[1:], os.Stdout)
		case "export":
			return cli.ExportDealsCommand(g, commandArgs[1:], os.Stdout)
		default:
			printUsage()
			return fmt.Errorf("unknown deals command: %s", commandArgs[0])
		}

	case "prefs":
		if len(commandArgs) == 0 {
			printUsage()
			return fmt.Errorf("prefs requires a subcommand")
		}
		switch commandArgs[0] {
		case "show":
			return cli.PrefsShowCommand(ctx, manager, os.Stdout)
		case "reset":
			return cli.PrefsResetCommand(ctx, manager, os.Stdout)
		default:
			printUsage()
			return fmt.Errorf("unknown prefs command: %s", commandArgs[0])
		}

	case "viz":
		if len(commandArgs) == 0 {
			printUsage()
			return fmt.Errorf("viz requires a subcommand")
		}
		switch commandArgs[0] {
		case "dashboard":
			return cli.VizDashboardCommand(g, commandArgs[1:], os.Stdout)
		case "graph":
			return cli.VizGraphCommand(ctx, g, commandArgs[1:], os.Stdout)
		default:
			printUsage()
			return fmt.Errorf("unknown viz command: %s", commandArgs[0])
		}

	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	fmt.Printf(`dealgrid v%s - Sales pipeline deals grid

USAGE:
  dealgrid [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version                Show version and exit
  --data-dir <path>        Data directory (default: ~/.local/share/dealgrid)
  --prefs-backend <name>   Preferences backend: badger, sqlite, memory (default: badger)
  --log-level <level>      debug, info, warn, error (default: info)

ENVIRONMENT (.env is read if present):
  DEALGRID_DATA_DIR, DEALGRID_PREFS_BACKEND, DEALGRID_LOG_LEVEL

COMMANDS:
  tui                      Interactive deals grid (saves view preferences)
  mcp                      Start MCP server for Claude Desktop
  deals                    List, summarize and export deals
  prefs                    Inspect saved view preferences
  viz                      Visualization commands

DEALS COMMANDS:
  dealgrid deals list       Print the filtered, sorted grid with totals
  dealgrid deals totals     Print totals for the filtered grid
  dealgrid deals export     Export the filtered grid as CSV
    --output <file>           Output file, - for stdout (default: deals-export-<date>.csv)

  Filter flags (all deals and viz commands; saved preferences apply otherwise):
    --stage <list>            Stages, e.g. Won,Lost
    --priority <list>         Priorities, e.g. High,Critical
    --owner <list>            Owner names
    --source <list>           Lead sources
    --min <dollars>           Minimum amount (default: 0)
    --max <dollars>           Maximum amount (default: 200000)
    --q <text>                Search name, company, owner and tags
    --where <query>           Filter query, e.g. 'stage=Won&min=50000'
    --sort <keys>             Sort keys, e.g. amount:desc,name
    --header <col=value>      Column filter (repeatable)

PREFS COMMANDS:
  dealgrid prefs show       Print the saved preferences
  dealgrid prefs reset      Delete the saved preferences

VIZ COMMANDS:
  dealgrid viz dashboard    ASCII pipeline dashboard
    --as-of <date>            Flag open deals closing before this date (default: today)
  dealgrid viz graph        Deal pipeline graph (xdot)
    --output <file>           Output file (default: stdout)

EXAMPLES:
  # Browse deals interactively
  dealgrid tui

  # Largest open deals owned by Sarah or Mike
  dealgrid deals list --stage negotiation,proposal --owner "Sarah Johnson,Mike Chen" --sort amount:desc

  # Export high priority deals
  dealgrid deals export --priority high --output high.csv

`, version)
}
