package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/aurora/internal/infrastructure/config"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/logging"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/server"
)

// ErrCommandFailed is returned by exec when the shell reports an error. The
// shell's own output has already been printed.
var ErrCommandFailed = errors.New("command failed")

type options struct {
	storage string
	dataDir string
	user    string
	logFile string
	dev     bool
}

// NewRootCommand builds the aurora command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "aurora",
		Short: "A simulated desktop with a multi-user virtual filesystem and shell",
		Long: `aurora hosts an in-memory desktop: a permissioned virtual filesystem,
per-user trash, a terminal shell with history and completion, application
windows and sound settings.

Run 'aurora serve' for the HTTP and WebSocket API, or 'aurora shell' for an
interactive terminal on the same persisted filesystem.

Configuration comes from the environment (AURORA_*, LOG_*, RATE_LIMIT_*);
flags override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.storage, "storage", "", "Storage backend (memory, badger)")
	f.StringVar(&opts.dataDir, "data-dir", "", "Directory for persisted state")
	f.StringVarP(&opts.user, "user", "u", "", "Account to log in as")
	f.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stdout")
	f.BoolVar(&opts.dev, "dev", false, "Development logging (debug level, console format)")

	root.AddCommand(
		newServeCommand(opts),
		newShellCommand(opts),
		newExecCommand(opts),
		newResetCommand(opts),
		newVolumeCommand(opts),
	)
	return root
}

// config loads the environment and applies flag overrides.
func (o *options) config() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.storage != "" {
		cfg.Storage.Backend = o.storage
	}
	if o.dataDir != "" {
		cfg.Storage.DataDir = o.dataDir
	}
	if o.user != "" {
		cfg.Shell.User = o.user
	}
	if o.dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logger builds the process logger. quiet discards output unless a log file
// was given, for commands whose stdout belongs to the user.
func (o *options) logger(cfg *config.Config, quiet bool) (*logging.Logger, error) {
	lc := logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	}
	switch {
	case o.logFile != "":
		lc.OutputPaths = []string{o.logFile}
	case quiet:
		return logging.NewNop(), nil
	}
	return logging.New(lc)
}

// openCore loads configuration and builds the domain services for a
// non-server command.
func (o *options) openCore() (*server.Core, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	logger, err := o.logger(cfg, true)
	if err != nil {
		return nil, err
	}
	return server.NewCore(cfg, logger)
}

// printResult writes shell output to stdout, or stderr when it is an error.
func printResult(cmd *cobra.Command, lines []string, isError bool) {
	if len(lines) == 0 {
		return
	}
	w := cmd.OutOrStdout()
	if isError {
		w = cmd.ErrOrStderr()
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}
