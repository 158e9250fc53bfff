package bot

import (
	"context"
	"fmt"
	"log/slog"
)

// Marker reactions attached to the invoking message.
const (
	EmojiWorking = "⏱️"
	EmojiSuccess = "✅"
	EmojiFailed  = "❌"
)

// Outcome is the terminal result of one reported command.
type Outcome int

const (
	// OutcomeAborted means the working marker could not be attached and the handler never ran.
	OutcomeAborted Outcome = iota
	// OutcomeSucceeded means the handler returned nil.
	OutcomeSucceeded
	// OutcomeFailed means the handler returned an error.
	OutcomeFailed
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "aborted"
	}
}

// MessageRef identifies the message a command was invoked from.
type MessageRef struct {
	ChannelID string
	MessageID string
}

// Reporter wraps command execution with status marker reactions:
// Idle -> Working -> (Succeeded | Failed) -> Idle.
type Reporter struct {
	chat ChatClient
}

// NewReporter creates a new Reporter.
func NewReporter(chat ChatClient) *Reporter {
	return &Reporter{chat: chat}
}

// Run executes fn between a working marker and an outcome marker.
// The working marker is removed after fn returns regardless of fn's result, and a
// failed removal never changes how the outcome is reported.
func (r *Reporter) Run(
	ctx context.Context,
	ref MessageRef,
	command string,
	fn func(ctx context.Context) error,
) Outcome {
	if err := r.chat.AddReaction(ref.ChannelID, ref.MessageID, EmojiWorking); err != nil {
		slog.Warn("failed to attach working reaction", "command", command, "error", err)
		r.reply(ref, fmt.Sprintf(
			"Emoji Reaction Failed. Solve it and try again. The problem was:\n```%s```", err))
		return OutcomeAborted
	}

	cmdErr := fn(ctx)

	if err := r.chat.RemoveReaction(ref.ChannelID, ref.MessageID, EmojiWorking); err != nil {
		slog.Warn("failed to remove working reaction", "command", command, "error", err)
		r.reply(ref, fmt.Sprintf("Emoji Reaction Remove Failed. The problem was:\n```%s```", err))
	}

	if cmdErr != nil {
		slog.Info("command returned error",
			"command", command,
			"kind", ErrorKind(cmdErr),
			"error", cmdErr,
		)
		r.react(ref, EmojiFailed)
		r.reply(ref, fmt.Sprintf("Command Failed. The problem was:\n```%s```", cmdErr))
		return OutcomeFailed
	}

	slog.Debug("processed command", "command", command)
	r.react(ref, EmojiSuccess)
	return OutcomeSucceeded
}

func (r *Reporter) react(ref MessageRef, emoji string) {
	if err := r.chat.AddReaction(ref.ChannelID, ref.MessageID, emoji); err != nil {
		slog.Warn("failed to attach outcome reaction", "emoji", emoji, "error", err)
	}
}

func (r *Reporter) reply(ref MessageRef, content string) {
	if err := r.chat.Reply(ref.ChannelID, ref.MessageID, content); err != nil {
		slog.Warn("failed to send reply", "channel", ref.ChannelID, "error", err)
	}
}
