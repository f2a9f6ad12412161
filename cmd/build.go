package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/genctl/internal/logging"
)

var buildFlake string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the generation for this host without activating it",
	Long: `Resolves <attr>.<hostname> (or <attr>.default) in the flake, builds it
and prints the resulting store path on stdout. Progress is written to
stderr.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildFlake, "flake", defaultFlake, "Flake URI to build from")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	// stdout carries only the store path so it can be captured by scripts
	out, errOut := logging.UserOutput()
	logging.SetUserOutput(errOut, errOut)
	defer logging.SetUserOutput(out, errOut)

	p, err := pipeline()
	if err != nil {
		return err
	}

	storePath, err := p.Build(cmd.Context(), buildFlake)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), storePath)
	return nil
}
