package cmd

import (
	"os"

	"codebundle/pkg/config"
	"codebundle/pkg/rsp"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newCreateRspCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create-rsp",
		Short: "Create a response file for the bundle command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
				a.logger.Debug("Reading answers from non-interactive input")
			}

			g := &rsp.Generator{
				In:          in,
				Out:         cmd.OutOrStdout(),
				StrictBools: a.cfg.BoolInput == config.BoolStrict,
				Logger:      a.logger,
			}
			answers, err := g.Run()
			if err != nil {
				printError(cmd.ErrOrStderr(), "Error: %v", err)
				return a.fail(a.cfg.Strict())
			}

			printSuccess(cmd.OutOrStdout(), "Response file created: %s", answers.File)
			return nil
		},
	}
}
