// Package cli implements the partynet command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/matzehuels/partynet/pkg/buildinfo"
	"github.com/matzehuels/partynet/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Fs is where options files and surveys are read and images written.
	Fs afero.Fs

	// Out receives status lines and tables.
	Out io.Writer

	verbose bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Fs:     afero.NewOsFs(),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. Running the root command without a subcommand renders the
// network with the compiled-in defaults.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "partynet",
		Short:         "partynet draws which parties each party's candidates want to work with",
		Long: `partynet reads a candidate questionnaire, counts which parties each
party's candidates named as preferred partners, and draws the result as a
directed network: node size shows incumbents, arrow width the share of a
party's candidates naming the target.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: c.runRender,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	addOptionFlags(root)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.statsCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Fs, c.Logger)
}
