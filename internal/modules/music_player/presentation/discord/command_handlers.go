package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/bot"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/usecases"
)

// maxListedTracks limits how many upcoming tracks nowplaying prints.
const maxListedTracks = 10

// CommandHandlers holds all the command handlers.
type CommandHandlers struct {
	voiceChannel *usecases.VoiceChannelService
	playback     *usecases.PlaybackService
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(
	voiceChannel *usecases.VoiceChannelService,
	playback *usecases.PlaybackService,
) *CommandHandlers {
	return &CommandHandlers{
		voiceChannel: voiceChannel,
		playback:     playback,
	}
}

// Commands returns the text commands of the music player.
func (h *CommandHandlers) Commands() []*bot.Command {
	return []*bot.Command{
		{
			Name:        "join",
			Aliases:     []string{"j"},
			Description: "Joins the voice channel you are in.",
			GuildOnly:   true,
			Handler:     h.HandleJoin,
		},
		{
			Name:        "leave",
			Aliases:     []string{"l"},
			Description: "Leaves the voice channel and drops the queue.",
			GuildOnly:   true,
			Handler:     h.HandleLeave,
		},
		{
			Name:        "mute",
			Aliases:     []string{"m"},
			Description: "Mutes the bot.",
			GuildOnly:   true,
			Handler:     h.mute(true),
		},
		{
			Name:        "unmute",
			Description: "Unmutes the bot.",
			GuildOnly:   true,
			Handler:     h.mute(false),
		},
		{
			Name:        "deafen",
			Description: "Deafens the bot.",
			GuildOnly:   true,
			Handler:     h.deafen(true),
		},
		{
			Name:        "undeafen",
			Description: "Undeafens the bot.",
			GuildOnly:   true,
			Handler:     h.deafen(false),
		},
		{
			Name:        "queue",
			Aliases:     []string{"q"},
			Description: "Adds a track to the queue.",
			Usage:       "<url>",
			GuildOnly:   true,
			Handler:     h.HandleQueue,
		},
		{
			Name:        "skip",
			Description: "Skips the current track.",
			GuildOnly:   true,
			Handler:     h.HandleSkip,
		},
		{
			Name:        "stop",
			Aliases:     []string{"s"},
			Description: "Stops playback and clears the queue.",
			GuildOnly:   true,
			Handler:     h.HandleStop,
		},
		{
			Name:        "seek",
			Description: "Seeks the current track.",
			Usage:       "<seconds>",
			GuildOnly:   true,
			Handler:     h.HandleSeek,
		},
		{
			Name:        "volume",
			Aliases:     []string{"v"},
			Description: "Sets the volume of the current track.",
			Usage:       "<0-100>",
			GuildOnly:   true,
			Handler:     h.HandleVolume,
		},
		{
			Name:        "nowplaying",
			Aliases:     []string{"np"},
			Description: "Shows the current track and what is up next.",
			GuildOnly:   true,
			Handler:     h.HandleNowPlaying,
		},
	}
}

// HandleJoin handles the join command.
func (h *CommandHandlers) HandleJoin(ctx context.Context, c *bot.CommandContext) error {
	guildID, err := parseGuildID(c)
	if err != nil {
		return err
	}

	if c.Message.Author == nil {
		return bot.ErrUnknown
	}
	userID, err := snowflake.Parse(c.Message.Author.ID)
	if err != nil {
		return fmt.Errorf("%w: invalid user", bot.ErrUnknown)
	}

	notificationChannelID, err := snowflake.Parse(c.Message.ChannelID)
	if err != nil {
		return fmt.Errorf("%w: invalid channel", bot.ErrUnknown)
	}

	output, err := h.voiceChannel.Join(ctx, usecases.JoinInput{
		GuildID:               guildID,
		UserID:                userID,
		NotificationChannelID: notificationChannelID,
	})
	if err != nil {
		return err
	}

	if output.AlreadyConnected {
		return c.Reply(fmt.Sprintf("Already connected to <#%d>.", output.Session.GetVoiceChannelID()))
	}
	return nil
}

// HandleLeave handles the leave command.
func (h *CommandHandlers) HandleLeave(ctx context.Context, c *bot.CommandContext) error {
	guildID, err := parseGuildID(c)
	if err != nil {
		return err
	}

	return h.voiceChannel.Leave(ctx, usecases.LeaveInput{GuildID: guildID})
}

func (h *CommandHandlers) mute(muted bool) bot.CommandHandler {
	return func(ctx context.Context, c *bot.CommandContext) error {
		guildID, err := parseGuildID(c)
		if err != nil {
			return err
		}

		return h.voiceChannel.SetMute(ctx, usecases.SetMuteInput{
			GuildID: guildID,
			Muted:   muted,
		})
	}
}

func (h *CommandHandlers) deafen(deafened bool) bot.CommandHandler {
	return func(ctx context.Context, c *bot.CommandContext) error {
		guildID, err := parseGuildID(c)
		if err != nil {
			return err
		}

		return h.voiceChannel.SetDeafen(ctx, usecases.SetDeafenInput{
			GuildID:  guildID,
			Deafened: deafened,
		})
	}
}

// HandleQueue handles the queue command.
func (h *CommandHandlers) HandleQueue(ctx context.Context, c *bot.CommandContext) error {
	if len(c.Args) != 1 {
		return bot.InvalidArguments("expected exactly one url")
	}

	guildID, err := parseGuildID(c)
	if err != nil {
		return err
	}

	var requesterID snowflake.ID
	if c.Message.Author != nil {
		requesterID, _ = snowflake.Parse(c.Message.Author.ID)
	}

	_, err = h.playback.Enqueue(ctx, usecases.EnqueueInput{
		GuildID:     guildID,
		URL:         c.Arg(0),
		RequesterID: requesterID,
	})
	return err
}

// HandleSkip handles the skip command.
func (h *CommandHandlers) HandleSkip(ctx context.Context, c *bot.CommandContext) error {
	guildID, err := parseGuildID(c)
	if err != nil {
		return err
	}

	_, err = h.playback.Skip(ctx, usecases.SkipInput{GuildID: guildID})
	return err
}

// HandleStop handles the stop command.
func (h *CommandHandlers) HandleStop(ctx context.Context, c *bot.CommandContext) error {
	guildID, err := parseGuildID(c)
	if err != nil {
		return err
	}

	return h.playback.Stop(ctx, usecases.StopInput{GuildID: guildID})
}

// HandleSeek handles the seek command. The argument is a whole number of seconds.
func (h *CommandHandlers) HandleSeek(ctx context.Context, c *bot.CommandContext) error {
	if len(c.Args) != 1 {
		return bot.InvalidArguments("expected a position in seconds")
	}
	seconds, err := strconv.ParseUint(c.Arg(0), 10, 32)
	if err != nil {
		return bot.InvalidArguments(fmt.Sprintf("`%s` is not a number of seconds", c.Arg(0)))
	}

	guildID, err := parseGuildID(c)
	if err != nil {
		return err
	}

	return h.playback.Seek(ctx, usecases.SeekInput{
		GuildID:  guildID,
		Position: time.Duration(seconds) * time.Second,
	})
}

// HandleVolume handles the volume command.
func (h *CommandHandlers) HandleVolume(ctx context.Context, c *bot.CommandContext) error {
	if len(c.Args) != 1 {
		return bot.InvalidArguments("expected a volume between 0 and 100")
	}
	percent, err := strconv.Atoi(strings.TrimSuffix(c.Arg(0), "%"))
	if err != nil {
		return bot.InvalidArguments(fmt.Sprintf("`%s` is not a volume", c.Arg(0)))
	}

	guildID, err := parseGuildID(c)
	if err != nil {
		return err
	}

	return h.playback.SetVolume(ctx, usecases.SetVolumeInput{
		GuildID: guildID,
		Percent: percent,
	})
}

// HandleNowPlaying handles the nowplaying command.
func (h *CommandHandlers) HandleNowPlaying(_ context.Context, c *bot.CommandContext) error {
	guildID, err := parseGuildID(c)
	if err != nil {
		return err
	}

	output, err := h.playback.List(guildID)
	if err != nil {
		return err
	}
	if output.Current == nil {
		return usecases.ErrNothingPlaying
	}

	return c.Reply(formatNowPlaying(output))
}

func formatNowPlaying(output *usecases.ListOutput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Now playing: **%s** [%s] (volume %d%%)",
		output.Current.DisplayTitle(),
		output.Current.FormattedDuration(),
		int(output.Current.Volume*100+0.5),
	)

	if len(output.Upcoming) == 0 {
		return sb.String()
	}

	sb.WriteString("\nUp next:")
	for i, track := range output.Upcoming {
		if i == maxListedTracks {
			fmt.Fprintf(&sb, "\n...and %d more", len(output.Upcoming)-maxListedTracks)
			break
		}
		// Upcoming tracks are not resolved yet, so fall back to their URL.
		name := track.Title
		if name == "" {
			name = "<" + track.SourceURL + ">"
		}
		fmt.Fprintf(&sb, "\n%d. %s", i+1, name)
	}
	return sb.String()
}

func parseGuildID(c *bot.CommandContext) (snowflake.ID, error) {
	if c.Message.GuildID == "" {
		return 0, bot.ErrGuildOnly
	}
	guildID, err := snowflake.Parse(c.Message.GuildID)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid guild", bot.ErrUnknown)
	}
	return guildID, nil
}
