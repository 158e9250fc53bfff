package bot

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler executes a text command. A returned error is rendered by the Reporter;
// handlers never format user-facing error text themselves.
type CommandHandler func(ctx context.Context, c *CommandContext) error

// Command describes a prefixed text command.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string // argument synopsis shown by help, e.g. "<url>"
	GuildOnly   bool
	Handler     CommandHandler
}

// CommandContext carries everything a handler needs about one invocation.
type CommandContext struct {
	Session *discordgo.Session // nil in tests
	Message *discordgo.Message
	Args    []string
	Chat    ChatClient
}

// Reply replies to the invoking message.
func (c *CommandContext) Reply(content string) error {
	return c.Chat.Reply(c.Message.ChannelID, c.Message.ID, content)
}

// Arg returns the i-th argument, or "" when missing.
func (c *CommandContext) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// ParseCommand splits content into a lower-cased command name and its arguments.
// ok is false when content does not start with prefix or names no command.
func ParseCommand(prefix, content string) (name string, args []string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}

	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}

	return strings.ToLower(fields[0]), fields[1:], true
}
