package domain

import (
	"errors"
	"strings"
)

// ErrNothingToEcho is returned when echo is given no text.
var ErrNothingToEcho = errors.New("nothing to echo")

// EchoResult holds the text to repeat back.
type EchoResult struct {
	Text string
}

// NewEchoResult joins the command arguments back into one line.
func NewEchoResult(args []string) (*EchoResult, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return nil, ErrNothingToEcho
	}
	return &EchoResult{Text: text}, nil
}
