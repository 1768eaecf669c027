package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Event is the part of an incoming text message the bot cares about.
type Event struct {
	UpdateID  int
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
}

// EventFromUpdate extracts a text message event. Updates without a text
// message (callbacks, photos, edits, ...) report false.
func EventFromUpdate(upd tgbotapi.Update) (Event, bool) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return Event{}, false
	}

	ev := Event{
		UpdateID:  upd.UpdateID,
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		Text:      msg.Text,
	}
	if msg.From != nil {
		ev.UserID = msg.From.ID
	}
	return ev, true
}
