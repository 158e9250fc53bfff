package general

import (
	"github.com/sglre6355/hibiki/internal/bot"
	"github.com/sglre6355/hibiki/internal/modules/general/presentation"
)

func init() {
	bot.Register(&GeneralModule{})
}

// GeneralModule provides the ping and echo commands.
type GeneralModule struct {
	pingHandler *presentation.PingHandler
	echoHandler *presentation.EchoHandler
}

// Name returns the module name.
func (m *GeneralModule) Name() string {
	return "general"
}

// Commands returns the text commands for this module.
func (m *GeneralModule) Commands() []*bot.Command {
	return []*bot.Command{
		{
			Name:        "ping",
			Description: "Replies with Pong!",
			Handler:     m.pingHandler.Handle,
		},
		{
			Name:        "echo",
			Description: "Repeats what you said.",
			Usage:       "<text>",
			Handler:     m.echoHandler.Handle,
		},
	}
}

// EventHandlers returns the event handlers for this module.
func (m *GeneralModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *GeneralModule) Init(_ bot.ModuleDependencies) error {
	m.pingHandler = presentation.NewPingHandler()
	m.echoHandler = presentation.NewEchoHandler()
	return nil
}

// Shutdown cleans up module resources.
func (m *GeneralModule) Shutdown() error {
	return nil
}
