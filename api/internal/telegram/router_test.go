package telegram_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"whocall-bot/api/internal/phone"
	"whocall-bot/api/internal/telegram"
	mocktelegram "whocall-bot/api/internal/telegram/mock"
)

const (
	chatID    = int64(1001)
	userID    = int64(77)
	messageID = 5
)

func textUpdate(text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: messageID,
		From:      &tgbotapi.User{ID: userID},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		cmd, _, _ := strings.Cut(text, " ")
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	}
	return tgbotapi.Update{UpdateID: 10, Message: msg}
}

// expectReply expects one message to the test chat and hands its text to check.
func expectReply(t *testing.T, s *mocktelegram.MockSender, err error, check func(text string)) *gomock.Call {
	t.Helper()
	return s.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		msg, ok := c.(tgbotapi.MessageConfig)
		require.True(t, ok, "unexpected chattable %T", c)
		require.Equal(t, chatID, msg.ChatID)
		require.Equal(t, messageID, msg.ReplyToMessageID)
		if check != nil {
			check(msg.Text)
		}
		return tgbotapi.Message{}, err
	})
}

func newRouter(t *testing.T, classifier telegram.Classifier) (*mocktelegram.MockSender, *telegram.Router, *observer.ObservedLogs) {
	t.Helper()
	ctrl := gomock.NewController(t)
	sender := mocktelegram.NewMockSender(ctrl)
	core, logs := observer.New(zapcore.DebugLevel)
	if classifier == nil {
		classifier = phone.New(phone.Options{})
	}
	r := telegram.NewRouter(telegram.Options{
		Sender:     sender,
		Classifier: classifier,
		Locale:     phone.English,
		Logger:     zap.New(core),
	})
	return sender, r, logs
}

func TestRouter_ValidNumber(t *testing.T) {
	sender, r, _ := newRouter(t, nil)

	expectReply(t, sender, nil, func(text string) {
		require.True(t, strings.HasPrefix(text, "✅"))
		require.Contains(t, text, "🔢 International: +1 415-555-2671\n")
		require.Contains(t, text, "🔢 National: (415) 555-2671\n")
		require.True(t, strings.HasSuffix(text, "🔢 E.164: +14155552671"))
	})

	r.HandleUpdate(context.Background(), textUpdate("  14155552671\n"))
}

func TestRouter_NormalizesDigitsBeforeLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	classifier := mocktelegram.NewMockClassifier(ctrl)
	sender, r, _ := newRouter(t, classifier)

	classifier.EXPECT().Classify("+998901234567").Return(phone.Result{Number: &phone.Number{
		Region:        "Uzbekistan",
		LineType:      phone.Mobile,
		International: "+998 90 123 45 67",
		National:      "90 123 45 67",
		E164:          "+998901234567",
	}})
	expectReply(t, sender, nil, func(text string) {
		require.Contains(t, text, "✅")
		require.Equal(t, 3, strings.Count(text, "🔢"))
		require.Contains(t, text, "📞 Line type: mobile")
	})

	r.HandleUpdate(context.Background(), textUpdate(" 998901234567 "))
}

func TestRouter_UzbekDigitsEndToEnd(t *testing.T) {
	sender, r, _ := newRouter(t, nil)

	expectReply(t, sender, nil, func(text string) {
		require.True(t, strings.HasPrefix(text, phone.English.Valid))
		require.Equal(t, 3, strings.Count(text, "🔢"))
		require.True(t, strings.HasSuffix(text, "🔢 E.164: +998901234567"))
	})

	r.HandleUpdate(context.Background(), textUpdate("998901234567"))
}

func TestRouter_ShortNumberIsRejected(t *testing.T) {
	sender, r, _ := newRouter(t, nil)

	expectReply(t, sender, nil, func(text string) {
		require.NotContains(t, text, "✅")
		require.Contains(t, []string{phone.English.Unparsable, phone.English.ImprobableFormat}, text)
	})

	r.HandleUpdate(context.Background(), textUpdate("+1"))
}

func TestRouter_InputErrorsAreInfo(t *testing.T) {
	sender, r, logs := newRouter(t, nil)
	expectReply(t, sender, nil, nil)

	r.HandleUpdate(context.Background(), textUpdate("hello"))

	require.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	require.Equal(t, 1, logs.FilterMessage("input rejected").Len())
}

func TestRouter_LookupFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	classifier := mocktelegram.NewMockClassifier(ctrl)
	sender, r, logs := newRouter(t, classifier)

	classifier.EXPECT().Classify(gomock.Any()).Return(phone.Result{
		Reason: phone.ReasonUnparsable,
		Cause:  phone.ErrLookup,
	})
	expectReply(t, sender, nil, func(text string) {
		require.Equal(t, phone.English.Unparsable, text)
	})

	r.HandleUpdate(context.Background(), textUpdate("+14155552671"))

	require.Equal(t, 1, logs.FilterMessage("lookup failed").FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestRouter_PanicBecomesProcessingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	classifier := mocktelegram.NewMockClassifier(ctrl)
	sender, r, logs := newRouter(t, classifier)

	classifier.EXPECT().Classify(gomock.Any()).DoAndReturn(func(string) phone.Result {
		panic("boom")
	})
	expectReply(t, sender, nil, func(text string) {
		require.Equal(t, phone.English.ProcessingError, text)
	})

	require.NotPanics(t, func() {
		r.HandleUpdate(context.Background(), textUpdate("+14155552671"))
	})

	entries := logs.FilterMessage("captured panic while handling update").All()
	require.Len(t, entries, 1)
	require.Equal(t, userID, entries[0].ContextMap()["user_id"])
	require.Equal(t, chatID, entries[0].ContextMap()["chat_id"])
}

func TestRouter_SendFailure(t *testing.T) {
	sender, r, logs := newRouter(t, nil)

	gomock.InOrder(
		expectReply(t, sender, errors.New("network down"), func(text string) {
			require.Contains(t, text, "✅")
		}),
		expectReply(t, sender, errors.New("network still down"), func(text string) {
			require.Equal(t, phone.English.ProcessingError, text)
		}),
	)

	require.NotPanics(t, func() {
		r.HandleUpdate(context.Background(), textUpdate("+14155552671"))
	})
	require.Equal(t, 1, logs.FilterMessage("could not send reply").Len())
	require.Equal(t, 1, logs.FilterMessage("could not send error reply").Len())
}

func TestRouter_Commands(t *testing.T) {
	cases := map[string]string{
		"/start":         phone.English.Usage,
		"/help":          phone.English.Usage,
		"/health":        phone.English.Healthy,
		"/start@whocall": phone.English.Usage,
		"/engine gemini": phone.English.UnknownCommand,
		"/14155552671 x": phone.English.UnknownCommand,
	}

	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			classifier := mocktelegram.NewMockClassifier(ctrl)
			sender, r, _ := newRouter(t, classifier)

			expectReply(t, sender, nil, func(text string) {
				require.Equal(t, want, text)
			})

			r.HandleUpdate(context.Background(), textUpdate(in))
		})
	}
}

func TestRouter_IgnoresNonText(t *testing.T) {
	sender, r, _ := newRouter(t, nil)
	sender.EXPECT().Send(gomock.Any()).Times(0)

	r.HandleUpdate(context.Background(), tgbotapi.Update{UpdateID: 1})
	r.HandleUpdate(context.Background(), tgbotapi.Update{UpdateID: 2, Message: &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: chatID},
		Photo: []tgbotapi.PhotoSize{{FileID: "x"}},
	}})
	r.HandleUpdate(context.Background(), tgbotapi.Update{UpdateID: 3, EditedMessage: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: "+14155552671",
	}})
}

func TestEventFromUpdate(t *testing.T) {
	ev, ok := telegram.EventFromUpdate(textUpdate("+14155552671"))
	require.True(t, ok)
	require.Equal(t, telegram.Event{
		UpdateID:  10,
		ChatID:    chatID,
		UserID:    userID,
		MessageID: messageID,
		Text:      "+14155552671",
	}, ev)

	upd := textUpdate("hi")
	upd.Message.From = nil
	ev, ok = telegram.EventFromUpdate(upd)
	require.True(t, ok)
	require.Zero(t, ev.UserID)

	_, ok = telegram.EventFromUpdate(tgbotapi.Update{})
	require.False(t, ok)
}
