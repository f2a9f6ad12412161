package cmd

import (
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the GC root for the active generation",
	Long: `Links the GC root to the generation the profile currently points at.

Use this after a switch reported that the GC root could not be registered:
the new generation is active at that point but may be garbage collected
until the GC root exists.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	inst, err := installer()
	if err != nil {
		return err
	}

	logInfo("Registering GC root...")
	current, err := inst.RegisterGCRoot()
	if err != nil {
		return err
	}

	logSuccess("GC root %s protects %s", inst.GCRootPath, current)
	return nil
}
