package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when the submission is still rejected
	// after the configured number of rounds.
	ErrTooManyAttempts = errors.New("tui: too many rejected submissions")
	// ErrDeclined is returned when the user declines the final confirmation.
	ErrDeclined = errors.New("tui: submission declined")
)
