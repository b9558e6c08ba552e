package cli

import (
	"github.com/spf13/cobra"
)

// renderCommand is the explicit form of the root command's default action.
func (c *CLI) renderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render the preference network (default command)",
		Args:  cobra.NoArgs,
		RunE:  c.runRender,
	}
}

func (c *CLI) runRender(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	opts, err := loadOptions(c.Fs, cmd.Flags())
	if err != nil {
		return err
	}
	opts.Logger = loggerFromContext(ctx)

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}

	printSuccess(c.Out, "Rendered preference network")
	printStats(c.Out, result.Records, result.Stats.NodeCount, result.Stats.EdgeCount)
	for _, format := range opts.Formats {
		printFile(c.Out, result.Paths[format])
	}
	return nil
}
