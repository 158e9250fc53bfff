package application

import (
	"github.com/sglre6355/hibiki/internal/bot"
	"github.com/sglre6355/hibiki/internal/modules/general/domain"
)

// EchoInteractor handles the echo use case.
type EchoInteractor struct{}

// NewEchoInteractor creates a new EchoInteractor.
func NewEchoInteractor() *EchoInteractor {
	return &EchoInteractor{}
}

// Execute returns the text to echo, or an invalid-arguments error when there is none.
func (e *EchoInteractor) Execute(args []string) (*domain.EchoResult, error) {
	result, err := domain.NewEchoResult(args)
	if err != nil {
		return nil, bot.InvalidArguments(err.Error())
	}
	return result, nil
}
