package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// User-facing output functions with status indicators.
// These write to stdout/stderr directly for CLI output,
// separate from the structured debug logging.

var (
	userOut io.Writer = os.Stdout
	userErr io.Writer = os.Stderr
)

var (
	infoMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Render("ℹ")
	successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).Render("✓")
	warningMark = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Render("⚠")
	errorMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Render("✗")
)

// SetUserOutput redirects user-facing output. Passing nil restores
// the process stdout/stderr.
func SetUserOutput(out, errOut io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	userOut = out
	userErr = errOut
}

// UserOutput returns the writers currently used for user-facing output.
func UserOutput() (out, errOut io.Writer) {
	return userOut, userErr
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(userOut, infoMark+" "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(userOut, successMark+" "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(userErr, warningMark+" "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(userErr, errorMark+" "+format+"\n", args...)
}
