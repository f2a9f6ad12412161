package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/genctl/internal/errors"
	"github.com/firefly-engineering/genctl/internal/generation"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active generation and its GC root",
	Long: `Shows where the profile and the GC root point and whether the active
generation is protected from garbage collection.

States:
  protected    GC root points at the active generation
  unprotected  a generation is active but no GC root exists
  stale        the GC root protects a different generation
  no-profile   nothing has been activated yet`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "text", "Output format: text or json")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if statusFormat != "text" && statusFormat != "json" {
		return errors.New(errors.ExitGeneralError, fmt.Sprintf("invalid format %q (must be text or json)", statusFormat))
	}

	inst, err := installer()
	if err != nil {
		return err
	}

	st, err := inst.Status()
	if err != nil {
		return fmt.Errorf("failed to read generation status: %w", err)
	}

	out := cmd.OutOrStdout()
	if statusFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	fmt.Fprintf(out, "Profile: %s -> %s\n", st.ProfilePath, orNone(st.Profile.String()))
	fmt.Fprintf(out, "GC root: %s -> %s\n", st.GCRootPath, orNone(st.GCRoot.String()))
	fmt.Fprintf(out, "State:   %s\n", st.State)

	switch st.State {
	case generation.StateUnprotected, generation.StateStale:
		logWarning("The active generation is not protected from garbage collection, run 'genctl register'")
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
