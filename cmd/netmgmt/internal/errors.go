package internal

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neo4j-graph-examples/network-management/internal/graph"
	"github.com/neo4j-graph-examples/network-management/internal/network"
	"github.com/neo4j-graph-examples/network-management/internal/types"
)

// Exit code constants for the CLI
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitError indicates a general error
	ExitError = 1
	// ExitTimeout indicates the operation timed out
	ExitTimeout = 3
	// ExitCancelled indicates the operation was cancelled
	ExitCancelled = 4
	// ExitConfigError indicates a configuration error
	ExitConfigError = 10
	// ExitDatabaseError indicates a database error
	ExitDatabaseError = 12
)

// CLIError represents a CLI-specific error with an exit code
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// WrapError creates a new CLIError wrapping an existing error
func WrapError(code int, message string, err error) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NewCLIError creates a new CLIError with the given code and message
func NewCLIError(code int, message string) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
	}
}

// HandleError prints err to the command's error output and returns the exit code for it.
func HandleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		cmd.PrintErrln("Operation cancelled")
		return ExitCancelled
	}

	if errors.Is(err, context.DeadlineExceeded) {
		cmd.PrintErrln("Operation timed out")
		return ExitTimeout
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		cmd.PrintErrln("Error:", cliErr.Message)
		if cliErr.Cause != nil && verboseRequested(cmd) {
			cmd.PrintErrln("Cause:", cliErr.Cause)
		}
		return cliErr.Code
	}

	var netErr *types.NetError
	if errors.As(err, &netErr) {
		cmd.PrintErrln("Error:", netErr.Error())
		if types.IsRetryable(err) && verboseRequested(cmd) {
			cmd.PrintErrln("The operation may succeed if retried")
		}
		return ExitCodeFor(netErr.Code)
	}

	cmd.PrintErrln("Error:", err)
	return ExitError
}

// ExitCodeFor maps a structured error code onto a CLI exit code.
func ExitCodeFor(code types.ErrorCode) int {
	switch code {
	case types.CONFIG_LOAD_FAILED,
		types.CONFIG_PARSE_FAILED,
		types.CONFIG_VALIDATION_FAILED,
		types.CONFIG_NOT_FOUND,
		graph.ErrCodeGraphInvalidConfig:
		return ExitConfigError
	case graph.ErrCodeGraphConnectionFailed,
		graph.ErrCodeGraphConnectionClosed,
		graph.ErrCodeGraphQueryFailed,
		graph.ErrCodeGraphWriteFailed,
		graph.ErrCodeGraphInvalidQuery,
		graph.ErrCodeGraphResultParsing,
		network.ErrCodeLookupFailed,
		network.ErrCodeResultDecodeFailed,
		network.ErrCodeSeedFailed,
		network.ErrCodeCountFailed:
		return ExitDatabaseError
	default:
		return ExitError
	}
}

func verboseRequested(cmd *cobra.Command) bool {
	verboseFlag := cmd.Flag("verbose")
	return verboseFlag != nil && verboseFlag.Changed
}

// IsVerbose checks if verbose mode is enabled via environment variable or flag.
// Used by panic recovery, before flags are parsed.
func IsVerbose() bool {
	if os.Getenv("NETMGMT_VERBOSE") != "" {
		return true
	}

	for _, arg := range os.Args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}

	return false
}
