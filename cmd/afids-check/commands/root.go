// Package commands implements the afids-check subcommands.
package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/afids/afids-go/internal/config"
	"github.com/afids/afids-go/internal/logging"
	"github.com/afids/afids-go/pkg/fcsv"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// Version is set at build time via ldflags.
var Version = "0.1.0"

// exitError carries a process exit code out of a cobra RunE.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// env is the state shared by all subcommands, set up before each run.
type env struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func (e *env) parser() *fcsv.Parser {
	p := fcsv.NewParser()
	if e.cfg != nil {
		p.AllowDuplicateLabels = e.cfg.Parser.AllowDuplicateLabels
	}
	return p
}

// NewRootCommand builds the command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	e := &env{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "afids-check",
		Short:         "Validate AFIDs fiducial (.fcsv) files",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(e.configPath)
			if err != nil {
				return err
			}
			if e.logLevel != "" {
				cfg.Logging.Level = e.logLevel
			}
			logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = e.logger.Sync()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&e.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	root.AddCommand(
		newValidateCommand(e),
		newShowCommand(e),
		newLabelsCommand(),
		newShellCommand(e),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}

	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCommandError
}
