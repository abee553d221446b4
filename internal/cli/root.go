// Package cli implements the pantry command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/pantry"
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
	jsonMode  bool
	verbose   bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags  rootFlags
	v      *viper.Viper
	logger *log.Logger
}

// NewRootCmd creates the top-level "pantry" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:     "pantry",
		Short:   "Track a food pantry's stock, recipients, and distributions",
		Long:    "Pantry keeps the inventory, the registered recipients, and the\ndistribution history of a food pantry in a single local file.",
		Version: pantry.Version,
		// Errors are printed once by Execute.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.pantry-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log ledger activity to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newItemCmd(a))
	root.AddCommand(newRecipientCmd(a))
	root.AddCommand(newDistributeCmd(a))
	root.AddCommand(newHistoryCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newQueryCmd(a))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "pantry:", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// Flag and argument errors from cobra.
	return exitUserError
}

// setup wires the logger and loads config.yaml. version needs no config and
// init writes its own before loading it.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = log.New(io.Discard, "", 0)
	if a.flags.verbose {
		a.logger = log.New(cmd.ErrOrStderr(), "pantry: ", log.LstdFlags)
	}
	if cmd.Name() == "version" || cmd.Name() == "init" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.v = v
	return nil
}

// exitError carries the exit code an error maps to.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }
