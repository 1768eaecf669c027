package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"whocall-bot/api/internal/phone"
)

//go:generate mockgen -package mocktelegram -source=interface.go -destination=mock/mocktelegram.go

// Sender delivers outgoing messages. *tgbotapi.BotAPI implements it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Classifier is the phone lookup used by the Router. *phone.Classifier implements it.
type Classifier interface {
	Classify(input string) phone.Result
}
