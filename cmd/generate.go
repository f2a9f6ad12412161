package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/genctl/internal/store"
)

var generateStorePath string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Activate an already built store path as the new generation",
	Long: `Points the system profile at the given store path and registers a GC
root for it. The store path is typically the output of 'genctl build'.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateStorePath, "store-path", "", "Store path to activate")
	_ = generateCmd.MarkFlagRequired("store-path")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	inst, err := installer()
	if err != nil {
		return err
	}
	return inst.Install(cmd.Context(), store.New(generateStorePath))
}
