package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/workform/internal/logger"
)

// Exit codes reported by Fatal, one per error class.
const (
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitNotFound     = 3
	ExitConflict     = 4
	ExitUnauthorized = 5
)

// ExitCode maps err onto the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, ErrValidation):
		return ExitInvalidInput
	case stderrors.Is(err, ErrNotFound):
		return ExitNotFound
	case stderrors.Is(err, ErrConflict):
		return ExitConflict
	case stderrors.Is(err, ErrUnauthorized):
		return ExitUnauthorized
	default:
		return ExitFailure
	}
}

// Format renders err for the terminal. Validation failures list one field
// per line; the other classes drop the trailing sentinel text and lead with
// a label instead.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if fields := Fields(err); len(fields) > 0 {
		var b strings.Builder
		b.WriteString("Invalid input:")
		for _, f := range fields {
			fmt.Fprintf(&b, "\n  - %s: %s", f.Field, f.Message)
		}
		return b.String()
	}
	for _, k := range []struct {
		sentinel error
		label    string
	}{
		{ErrNotFound, "Not found"},
		{ErrConflict, "Already exists"},
		{ErrUnauthorized, "Not authorized"},
	} {
		if stderrors.Is(err, k.sentinel) {
			return k.label + ": " + strings.TrimSuffix(err.Error(), ": "+k.sentinel.Error())
		}
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs err with its class, prints Format(err) to stderr and exits
// with ExitCode(err). A nil error is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err, "exit", ExitCode(err))
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(ExitCode(err))
}
