package cmd

import (
	"github.com/spf13/cobra"
)

var switchFlake string

var switchCmd = &cobra.Command{
	Use:   "switch",
	Short: "Build the generation for this host and activate it",
	Args:  cobra.NoArgs,
	RunE:  runSwitch,
}

func init() {
	switchCmd.Flags().StringVar(&switchFlake, "flake", defaultFlake, "Flake URI to build from")
	rootCmd.AddCommand(switchCmd)
}

func runSwitch(cmd *cobra.Command, args []string) error {
	p, err := pipeline()
	if err != nil {
		return err
	}

	_, err = p.Switch(cmd.Context(), switchFlake)
	return err
}
