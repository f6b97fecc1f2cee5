package engine

import "fmt"

// PickErrorCode is the closed set of reasons a pick can be rejected.
type PickErrorCode string

const (
	CodeNotInProgress     PickErrorCode = "NOT_IN_PROGRESS"
	CodeWrongTurn         PickErrorCode = "WRONG_TURN"
	CodePlayerUnavailable PickErrorCode = "PLAYER_UNAVAILABLE"
	CodeAlreadyDrafted    PickErrorCode = "ALREADY_DRAFTED"
	CodeTeamNotFound      PickErrorCode = "TEAM_NOT_FOUND"
	CodePlayerNotFound    PickErrorCode = "PLAYER_NOT_FOUND"
)

// Sentinels for errors.Is comparisons against a *PickError.
var (
	ErrNotInProgress     = &PickError{Code: CodeNotInProgress}
	ErrWrongTurn         = &PickError{Code: CodeWrongTurn}
	ErrPlayerUnavailable = &PickError{Code: CodePlayerUnavailable}
	ErrAlreadyDrafted    = &PickError{Code: CodeAlreadyDrafted}
	ErrTeamNotFound      = &PickError{Code: CodeTeamNotFound}
	ErrPlayerNotFound    = &PickError{Code: CodePlayerNotFound}
)

// PickError is a pick validation failure. It never indicates a fault in the
// engine itself.
type PickError struct {
	Code    PickErrorCode
	Message string
}

func (e *PickError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any *PickError carrying the same code.
func (e *PickError) Is(target error) bool {
	t, ok := target.(*PickError)
	return ok && t.Code == e.Code
}

func pickErr(code PickErrorCode, format string, args ...any) *PickError {
	return &PickError{Code: code, Message: fmt.Sprintf(format, args...)}
}
