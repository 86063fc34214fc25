package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrPlayerNotFound = errors.New("player binary not found")
	ErrLaunchFailed   = errors.New("player launch failed")
	ErrSessionClosed  = errors.New("player session closed")
	ErrProtocolDesync = errors.New("rc protocol out of sync")
	ErrReplyTimeout   = errors.New("timed out waiting for player reply")
	ErrInputClosed    = errors.New("input closed")
	ErrInterrupted    = errors.New("interrupted")
	ErrLogWrite       = errors.New("annotation log write failed")
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// MarkError wraps an error with a user-friendly suggestion.
type MarkError struct {
	Err        error
	Suggestion string
}

func (e *MarkError) Error() string {
	return e.Err.Error()
}

func (e *MarkError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &MarkError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// IsProtocol reports whether err means the RC session can no longer be trusted.
func IsProtocol(err error) bool {
	return errors.Is(err, ErrSessionClosed) ||
		errors.Is(err, ErrProtocolDesync) ||
		errors.Is(err, ErrReplyTimeout)
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var markErr *MarkError
	if errors.As(err, &markErr) && markErr.Suggestion != "" {
		return markErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrPlayerNotFound) || strings.Contains(errStr, "executable file not found") {
		return "Install VLC or point player.binary in ~/.vlcmarkrc at the vlc executable"
	}

	if errors.Is(err, ErrLaunchFailed) {
		return "Check that the player starts on its own with: vlc --extraintf rc"
	}

	if errors.Is(err, ErrReplyTimeout) {
		return "The player stopped answering. Raise player.reply_timeout_ms if it is just slow"
	}

	if errors.Is(err, ErrSessionClosed) || errors.Is(err, ErrProtocolDesync) {
		return "The player exited or its output got out of step. Restart vlcmark to continue annotating"
	}

	if errors.Is(err, ErrLogWrite) || strings.Contains(errStr, "permission denied") {
		return "Make sure the output log path is writable"
	}

	if errors.Is(err, ErrConfigNotFound) {
		return "Run 'vlcmark config init' to create a configuration file"
	}

	if errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'vlcmark config show' to inspect the loaded configuration"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
