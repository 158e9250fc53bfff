package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// ChatClient provides the chat operations commands and the Reporter need.
// This interface enables testing handlers without a live Discord connection.
type ChatClient interface {
	// AddReaction attaches a unicode emoji reaction to a message.
	AddReaction(channelID, messageID, emoji string) error

	// RemoveReaction removes the bot's own emoji reaction from a message.
	RemoveReaction(channelID, messageID, emoji string) error

	// Reply sends content as a reply to a message.
	Reply(channelID, messageID, content string) error

	// Send sends content to a channel.
	Send(channelID, content string) error
}

// DiscordChatClient implements ChatClient using a live Discord session.
type DiscordChatClient struct {
	session *discordgo.Session
}

// NewDiscordChatClient creates a new DiscordChatClient.
func NewDiscordChatClient(s *discordgo.Session) *DiscordChatClient {
	return &DiscordChatClient{session: s}
}

// AddReaction attaches emoji to the message via Discord API.
func (c *DiscordChatClient) AddReaction(channelID, messageID, emoji string) error {
	return c.session.MessageReactionAdd(channelID, messageID, emoji)
}

// RemoveReaction removes the bot's own emoji reaction via Discord API.
func (c *DiscordChatClient) RemoveReaction(channelID, messageID, emoji string) error {
	return c.session.MessageReactionRemove(channelID, messageID, emoji, "@me")
}

// Reply sends a message referencing messageID.
func (c *DiscordChatClient) Reply(channelID, messageID, content string) error {
	_, err := c.session.ChannelMessageSendReply(channelID, content, &discordgo.MessageReference{
		MessageID: messageID,
		ChannelID: channelID,
	})
	return err
}

// Send sends a plain message to the channel.
func (c *DiscordChatClient) Send(channelID, content string) error {
	_, err := c.session.ChannelMessageSend(channelID, content)
	return err
}

// MockChatClient is a test double for ChatClient.
// It records reactions currently present on each message and every reply sent.
type MockChatClient struct {
	mu sync.Mutex

	Reactions map[string][]string // messageID -> emojis currently attached
	Replies   []string
	Sent      []string

	AddErr    map[string]error // emoji -> error returned by AddReaction
	RemoveErr error
	ReplyErr  error
	SendErr   error
}

// NewMockChatClient creates an empty MockChatClient.
func NewMockChatClient() *MockChatClient {
	return &MockChatClient{
		Reactions: make(map[string][]string),
		AddErr:    make(map[string]error),
	}
}

// AddReaction records the reaction unless an error is configured for emoji.
func (m *MockChatClient) AddReaction(_, messageID, emoji string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.AddErr[emoji]; err != nil {
		return err
	}
	m.Reactions[messageID] = append(m.Reactions[messageID], emoji)
	return nil
}

// RemoveReaction removes the recorded reaction unless RemoveErr is set.
func (m *MockChatClient) RemoveReaction(_, messageID, emoji string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	reactions := m.Reactions[messageID]
	for i, r := range reactions {
		if r == emoji {
			m.Reactions[messageID] = append(reactions[:i], reactions[i+1:]...)
			break
		}
	}
	return nil
}

// Reply records content.
func (m *MockChatClient) Reply(_, _, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Replies = append(m.Replies, content)
	return m.ReplyErr
}

// Send records content.
func (m *MockChatClient) Send(_, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sent = append(m.Sent, content)
	return m.SendErr
}

// ReactionsOn returns a copy of the reactions recorded for messageID.
func (m *MockChatClient) ReactionsOn(messageID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]string, len(m.Reactions[messageID]))
	copy(result, m.Reactions[messageID])
	return result
}

// Ensure DiscordChatClient implements ChatClient.
var (
	_ ChatClient = (*DiscordChatClient)(nil)
	_ ChatClient = (*MockChatClient)(nil)
)
