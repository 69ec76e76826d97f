package setup

import (
	"errors"
	"fmt"
)

// Error categories for session-fatal failures. Input validation problems
// never surface here; editors reprompt instead.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigInvalid  = errors.New("config file invalid")
	ErrSaveFailed     = errors.New("save failed")
)

// SessionError is a fatal session failure with actionable guidance.
type SessionError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *SessionError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *SessionError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Type
}

// Is lets errors.Is match the category sentinel.
func (e *SessionError) Is(target error) bool {
	return errors.Is(e.Type, target)
}

func newConfigNotFoundError(path string) *SessionError {
	return &SessionError{
		Type:    ErrConfigNotFound,
		Message: path,
		Guidance: "Setup edits an existing velocity.toml and never creates one. " +
			"Run a fresh install first, or point --file at the right path.",
	}
}

func newConfigReadError(path string, cause error) *SessionError {
	return &SessionError{
		Type:     ErrConfigInvalid,
		Message:  fmt.Sprintf("failed to read %s", path),
		Guidance: "Check the file permissions and that the path is a regular file.",
		Cause:    cause,
	}
}

func newConfigParseError(path string, cause error) *SessionError {
	return &SessionError{
		Type:     ErrConfigInvalid,
		Message:  fmt.Sprintf("failed to parse %s", path),
		Guidance: "The file is not valid TOML. Fix the syntax error and rerun setup.",
		Cause:    cause,
	}
}

func newSaveError(path string, cause error) *SessionError {
	return &SessionError{
		Type:     ErrSaveFailed,
		Message:  fmt.Sprintf("failed to write %s", path),
		Guidance: "Check the file permissions; the on-disk file was left untouched.",
		Cause:    cause,
	}
}
