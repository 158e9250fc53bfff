package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// intents requested from the gateway: text commands, flag reactions and voice state.
const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMessageReactions |
	discordgo.IntentsGuildVoiceStates |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// Bot manages the Discord bot lifecycle and module coordination.
type Bot struct {
	config   *Config
	session  *discordgo.Session
	chat     ChatClient
	reporter *Reporter
	modules  []Module
	commands *CommandTable
}

// NewBot creates a new Bot instance with the given configuration.
func NewBot(cfg *Config) *Bot {
	return &Bot{
		config:  cfg,
		modules: make([]Module, 0),
	}
}

// LoadModules loads modules from the global registry and their configuration.
func (b *Bot) LoadModules() error {
	b.modules = Modules()

	for _, mod := range b.modules {
		configurable, ok := mod.(ConfigurableModule)
		if !ok {
			continue
		}
		if err := configurable.LoadConfig(); err != nil {
			return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
		}
	}

	return nil
}

// Start connects to Discord, initializes modules and starts dispatching commands.
func (b *Bot) Start() error {
	session, err := discordgo.New("Bot " + b.config.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = intents
	b.session = session
	b.setChat(NewDiscordChatClient(session))

	// Open before initializing modules so that State.User is populated
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	if err := b.buildCommandTable(); err != nil {
		return fmt.Errorf("failed to build command table: %w", err)
	}

	b.session.AddHandler(b.handleMessageCreate)
	b.registerEventHandlers()

	slog.Info("started bot",
		"user_id", b.session.State.User.ID,
		"username", b.session.State.User.Username,
		"prefix", b.config.CommandPrefix,
	)

	return nil
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	for _, mod := range b.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

func (b *Bot) setChat(chat ChatClient) {
	b.chat = chat
	b.reporter = NewReporter(chat)
}

// initModules initializes all loaded modules.
func (b *Bot) initModules() error {
	deps := ModuleDependencies{
		Session: b.session,
		Chat:    b.chat,
	}

	for _, mod := range b.modules {
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(b.modules))
	for i, mod := range b.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// buildCommandTable gathers all module commands plus the built-in help command.
func (b *Bot) buildCommandTable() error {
	commands := []*Command{b.helpCommand()}
	for _, mod := range b.modules {
		commands = append(commands, mod.Commands()...)
	}

	table, err := NewCommandTable(commands...)
	if err != nil {
		return err
	}
	b.commands = table
	return nil
}

// registerEventHandlers registers all module event handlers with the session.
func (b *Bot) registerEventHandlers() {
	for _, mod := range b.modules {
		for _, handler := range mod.EventHandlers() {
			b.session.AddHandler(handler)
		}
	}
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.dispatch(context.Background(), s, m.Message)
}

// dispatch routes a message to its command handler through the Reporter.
// Messages that are not commands, or name no known command, are ignored.
func (b *Bot) dispatch(ctx context.Context, s *discordgo.Session, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot {
		return
	}

	name, args, ok := ParseCommand(b.config.CommandPrefix, m.Content)
	if !ok {
		return
	}

	cmd, ok := b.commands.Lookup(name)
	if !ok {
		slog.Debug("found no handler for command", "command", name)
		return
	}

	slog.Info("got command", "command", cmd.Name, "user", m.Author.Username, "guild", m.GuildID)

	cc := &CommandContext{
		Session: s,
		Message: m,
		Args:    args,
		Chat:    b.chat,
	}

	ref := MessageRef{ChannelID: m.ChannelID, MessageID: m.ID}
	b.reporter.Run(ctx, ref, cmd.Name, func(ctx context.Context) error {
		if cmd.GuildOnly && m.GuildID == "" {
			return ErrGuildOnly
		}
		return cmd.Handler(ctx, cc)
	})
}

// helpCommand returns the built-in help command listing every registered command.
func (b *Bot) helpCommand() *Command {
	return &Command{
		Name:        "help",
		Aliases:     []string{"h"},
		Description: "Lists commands, or describes one command.",
		Usage:       "[command]",
		Handler: func(_ context.Context, c *CommandContext) error {
			if name := strings.ToLower(c.Arg(0)); name != "" {
				cmd, ok := b.commands.Lookup(strings.TrimPrefix(name, b.config.CommandPrefix))
				if !ok {
					return InvalidArguments(fmt.Sprintf("could not find: `%s`", name))
				}
				return c.Reply(b.describe(cmd))
			}

			var sb strings.Builder
			sb.WriteString("Hello! こんにちは！Hola! Bonjour! 您好! 안녕하세요~\n")
			sb.WriteString("If you want more information about a specific command, just pass the command as argument.\n\n")
			for _, cmd := range b.commands.List() {
				fmt.Fprintf(&sb, "`%s%s` %s\n", b.config.CommandPrefix, cmd.Name, cmd.Description)
			}
			return c.Reply(sb.String())
		},
	}
}

func (b *Bot) describe(cmd *Command) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s%s**", b.config.CommandPrefix, cmd.Name)
	if cmd.Usage != "" {
		fmt.Fprintf(&sb, " %s", cmd.Usage)
	}
	fmt.Fprintf(&sb, "\n%s", cmd.Description)
	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(&sb, "\nAliases: %s", strings.Join(cmd.Aliases, ", "))
	}
	if cmd.GuildOnly {
		sb.WriteString("\nOnly in servers.")
	}
	return sb.String()
}
