package presentation

import (
	"context"

	"github.com/sglre6355/hibiki/internal/bot"
	"github.com/sglre6355/hibiki/internal/modules/general/application"
)

// PingHandler handles the ping command.
type PingHandler struct {
	interactor *application.PingInteractor
}

// NewPingHandler creates a new PingHandler.
func NewPingHandler() *PingHandler {
	return &PingHandler{
		interactor: application.NewPingInteractor(),
	}
}

// Handle processes the ping command and replies.
func (h *PingHandler) Handle(_ context.Context, c *bot.CommandContext) error {
	result := h.interactor.Execute()
	return c.Reply(result.Message)
}

// EchoHandler handles the echo command.
type EchoHandler struct {
	interactor *application.EchoInteractor
}

// NewEchoHandler creates a new EchoHandler.
func NewEchoHandler() *EchoHandler {
	return &EchoHandler{
		interactor: application.NewEchoInteractor(),
	}
}

// Handle replies with the command's arguments.
func (h *EchoHandler) Handle(_ context.Context, c *bot.CommandContext) error {
	result, err := h.interactor.Execute(c.Args)
	if err != nil {
		return err
	}
	return c.Reply(result.Text)
}
