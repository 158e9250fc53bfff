package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/bot"
	"github.com/sglre6355/hibiki/internal/modules/translate/application/usecases"
	"github.com/sglre6355/hibiki/internal/modules/translate/domain"
)

// MessageFetcher loads a message by channel and message ID.
type MessageFetcher func(channelID, messageID string) (*discordgo.Message, error)

// Handlers holds the translate command and reaction handlers.
type Handlers struct {
	translate *usecases.TranslateService
	chat      bot.ChatClient
	fetch     MessageFetcher
	botID     string
}

// NewHandlers creates new Handlers. Reactions by botID are ignored.
func NewHandlers(
	translate *usecases.TranslateService,
	chat bot.ChatClient,
	fetch MessageFetcher,
	botID string,
) *Handlers {
	return &Handlers{
		translate: translate,
		chat:      chat,
		fetch:     fetch,
		botID:     botID,
	}
}

// Commands returns the translate command.
func (h *Handlers) Commands() []*bot.Command {
	return []*bot.Command{
		{
			Name:        "translate",
			Aliases:     []string{"t"},
			Description: "Translates the message you reply to. Without a locale, your last one is used.",
			Usage:       "[locale]",
			Handler:     h.HandleTranslate,
		},
	}
}

// HandleTranslate translates the message the command replies to.
func (h *Handlers) HandleTranslate(ctx context.Context, c *bot.CommandContext) error {
	referenced := c.Message.ReferencedMessage
	if referenced == nil {
		return bot.InvalidArguments("Reference message to translate")
	}

	userID, err := authorID(c.Message)
	if err != nil {
		return err
	}

	output, err := h.translate.Translate(ctx, usecases.TranslateInput{
		UserID: userID,
		Text:   referenced.Content,
		Locale: c.Arg(0),
	})
	if err != nil {
		return err
	}

	return c.Reply(output.Text)
}

// HandleReactionAdd translates a message when someone reacts to it with a locale flag.
func (h *Handlers) HandleReactionAdd(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.MessageReaction == nil || r.UserID == h.botID {
		return
	}
	// Custom emoji carry an ID; flags are plain unicode
	if r.Emoji.ID != "" {
		return
	}
	locale, ok := domain.LocaleByFlag(r.Emoji.Name)
	if !ok {
		return
	}

	userID, err := snowflake.Parse(r.UserID)
	if err != nil {
		slog.Error("failed to parse user ID in reaction", "error", err)
		return
	}

	message, err := h.fetch(r.ChannelID, r.MessageID)
	if err != nil {
		slog.Warn("failed to fetch message to translate",
			"channel", r.ChannelID,
			"message", r.MessageID,
			"error", err,
		)
		return
	}

	output, err := h.translate.Translate(context.Background(), usecases.TranslateInput{
		UserID: userID,
		Text:   message.Content,
		Locale: locale,
	})
	if err != nil {
		slog.Warn("failed to translate reacted message",
			"channel", r.ChannelID,
			"message", r.MessageID,
			"locale", locale,
			"error", err,
		)
		return
	}

	if err := h.chat.Reply(r.ChannelID, r.MessageID, output.Text); err != nil {
		slog.Warn("failed to reply with translation", "channel", r.ChannelID, "error", err)
	}
}

func authorID(m *discordgo.Message) (snowflake.ID, error) {
	if m.Author == nil {
		return 0, bot.ErrUnknown
	}
	id, err := snowflake.Parse(m.Author.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid user", bot.ErrUnknown)
	}
	return id, nil
}
