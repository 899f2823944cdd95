package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/naveenspark/moviemania/internal/config"
	"github.com/naveenspark/moviemania/internal/logging"
	"github.com/naveenspark/moviemania/internal/session"
	"github.com/naveenspark/moviemania/internal/tui"
	"github.com/naveenspark/moviemania/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	_ = godotenv.Load()

	e := &env{}
	if err := e.execute(e.rootCmd()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env carries the flags and the dependencies built from them.
// Every command receives the same session store.
type env struct {
	apiURL      string
	sessionFile string
	ephemeral   bool
	debug       bool
	logLevel    string
	logFormat   string

	cfg     *config.Config
	logger  *slog.Logger
	logFile io.Closer
	storage session.Storage
	store   *session.Store
	client  *client.Client
}

func newRootCmd() *cobra.Command {
	return (&env{}).rootCmd()
}

// execute runs cmd and releases what setup opened, whether or not cmd fails.
func (e *env) execute(cmd *cobra.Command) error {
	defer e.teardown()
	return cmd.Execute()
}

func (e *env) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "moviemania",
		Short:   "Terminal client for the MovieMania catalog",
		Long:    "MovieMania is a terminal client for the MovieMania catalog API.\nRun without arguments to open the interactive catalog.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&e.apiURL, "api-url", "", "API base URL (or MOVIEMANIA_API_URL)")
	pf.StringVar(&e.sessionFile, "session-file", "", "Session file path (or MOVIEMANIA_SESSION_FILE)")
	pf.BoolVar(&e.ephemeral, "ephemeral", false, "Keep the session in memory only")
	pf.StringVar(&e.logLevel, "log-level", "", "Log level: debug, info, warn, error (or MOVIEMANIA_LOG_LEVEL)")
	pf.StringVar(&e.logFormat, "log-format", "", "Log format: text, json (or MOVIEMANIA_LOG_FORMAT)")
	pf.BoolVar(&e.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newLoginCmd(e),
		newLogoutCmd(e),
		newRegisterCmd(e),
		newStatusCmd(e),
		newMoviesCmd(e),
		newVersionCmd(),
	)
	return root
}

// setup loads config, applies flag overrides and builds the logger, the
// session store and the API client.
func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = e.apiURL
	}
	if flags.Changed("session-file") {
		cfg.SessionFile = e.sessionFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = e.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = e.logFormat
	}
	if e.debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg

	level := logging.ParseLevel(cfg.LogLevel)
	switch {
	case cmd != cmd.Root():
		e.logger = logging.NewLoggerWithWriter(level, cfg.LogFormat, cmd.ErrOrStderr())
	case cfg.LogFile != "":
		// The TUI owns the terminal; logs go to a file or nowhere.
		logger, closer, err := logging.NewFileLogger(level, cfg.LogFormat, cfg.LogFile)
		if err != nil {
			return err
		}
		e.logger, e.logFile = logger, closer
	default:
		e.logger = logging.Discard()
	}

	if e.ephemeral {
		e.storage = session.NewMemoryStorage()
	} else {
		e.storage = session.NewFileStorage(cfg.SessionFile)
	}
	e.store = session.New(e.storage, e.logger)
	sess := e.store.Restore()
	e.logger.Debug("session restored", "role", sess.Role().String(), "ephemeral", e.ephemeral)

	e.client = client.New(cfg.APIURL, e.store,
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithLogger(e.logger),
	)
	return nil
}

func (e *env) teardown() {
	if e.logFile != nil {
		e.logFile.Close() //nolint:errcheck
		e.logFile = nil
	}
}

func (e *env) runTUI() error {
	app := tui.NewApp(e.client, e.store, tui.Settings{
		FeaturedCount: e.cfg.FeaturedCount,
		Version:       version,
		Logger:        e.logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	stop := tui.WatchSession(p, e.store)
	defer stop()

	e.logger.Info("tui started", "api_url", e.cfg.APIURL, "version", version)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
