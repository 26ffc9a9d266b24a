// Package cli implements the tabdeck command-line host: a demo driver
// that runs the tab session engine against an in-memory navigator and a
// SQLite-persisted session.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	session   string
	jsonMode  bool
	verbose   bool
	logFile   string
}

var flags rootFlags

// NewRootCmd creates the top-level "tabdeck" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tabdeck",
		Short: "Tabdeck drives a persisted document-tab session",
		Long: `Tabdeck keeps a strip of route-bound tabs synchronized with a
navigation history. Each invocation loads the named session, applies the
requested operation through the sync engine, and saves the session back.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .tabdeck)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .tabdeck-db)")
	root.PersistentFlags().StringVar(&flags.session, "session", "current", "session name to operate on")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "also write logs to this rotating file")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newNavCmd())
	root.AddCommand(newTabsCmd())
	root.AddCommand(newRoutesCmd())
	root.AddCommand(newSessionsCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// setupLogging configures the default slog logger: stderr text handler,
// debug level with --verbose, optional rotating file via --log-file.
func setupLogging() {
	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if flags.logFile != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   flags.logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   true,
		})
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
