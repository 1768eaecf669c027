package telegram

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-faster/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"whocall-bot/api/internal/logger"
	"whocall-bot/api/internal/metrics"
	"whocall-bot/api/internal/phone"
)

// maxMessageLength is Telegram's limit for a text message, in characters.
const maxMessageLength = 4096

type Options struct {
	Sender     Sender
	Classifier Classifier
	// Locale defaults to phone.Chinese.
	Locale phone.Locale
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Router answers text messages with phone number reports.
type Router struct {
	sender     Sender
	classifier Classifier
	locale     phone.Locale
	log        *zap.Logger
}

func NewRouter(opts Options) *Router {
	r := &Router{
		sender:     opts.Sender,
		classifier: opts.Classifier,
		locale:     opts.Locale,
		log:        opts.Logger,
	}
	if r.locale.Tag == "" {
		r.locale = phone.Chinese
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

// HandleUpdate processes one update and replies in the same chat. It never
// panics and never returns an error: every failure ends up in the log and,
// when possible, as a generic error reply to the user.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	ev, ok := EventFromUpdate(upd)
	if !ok {
		return
	}

	start := time.Now()
	ctx = logger.WithLogger(ctx, r.log.With(
		zap.Int("update_id", ev.UpdateID),
		zap.Int64("chat_id", ev.ChatID),
		zap.Int64("user_id", ev.UserID),
		zap.String("request_id", uuid.NewString()),
	))

	defer func() {
		if p := recover(); p != nil {
			metrics.HandlerErrorsTotal.WithLabelValues("panic").Inc()
			logger.Error(ctx, "captured panic while handling update", zap.Any("panic", p), zap.Stack("stack"))
			r.sendProcessingError(ctx, ev)
		}
		metrics.UpdateDuration.Observe(time.Since(start).Seconds())
	}()

	text := r.respond(ctx, upd.Message, ev)
	if err := r.reply(ev, text); err != nil {
		metrics.HandlerErrorsTotal.WithLabelValues("send").Inc()
		logger.Error(ctx, "could not send reply", zap.Error(err))
		r.sendProcessingError(ctx, ev)
	}
}

func (r *Router) respond(ctx context.Context, msg *tgbotapi.Message, ev Event) string {
	if msg.IsCommand() {
		return r.HandleCommand(ctx, msg.Command())
	}
	return r.Lookup(ctx, ev.Text)
}

// HandleCommand returns the reply for a bot command (without the slash).
func (r *Router) HandleCommand(ctx context.Context, command string) string {
	logger.Info(ctx, "command received", zap.String("command", command))

	switch command {
	case "start", "help":
		metrics.CommandsTotal.WithLabelValues(command).Inc()
		return r.locale.Usage
	case "health":
		metrics.CommandsTotal.WithLabelValues(command).Inc()
		return r.locale.Healthy
	default:
		metrics.CommandsTotal.WithLabelValues("unknown").Inc()
		return r.locale.UnknownCommand
	}
}

// Lookup trims and normalizes raw, classifies it and renders the report.
func (r *Router) Lookup(ctx context.Context, raw string) string {
	input := phone.Normalize(strings.TrimSpace(raw))
	logger.Info(ctx, "lookup requested", zap.String("input", input))

	res := r.classifier.Classify(input)
	metrics.LookupsTotal.WithLabelValues(res.Outcome()).Inc()

	switch {
	case res.Valid():
		logger.Info(ctx, "lookup done",
			zap.String("e164", res.Number.E164),
			zap.Stringer("line_type", res.Number.LineType))
	case errors.Is(res.Cause, phone.ErrLookup):
		metrics.HandlerErrorsTotal.WithLabelValues("lookup").Inc()
		logger.Error(ctx, "lookup failed", zap.String("input", input), zap.Error(res.Cause))
	default:
		// ошибки ввода ожидаемы
		logger.Info(ctx, "input rejected", zap.Stringer("reason", res.Reason), zap.NamedError("cause", res.Cause))
	}

	return phone.FormatReply(res, r.locale)
}

func (r *Router) reply(ev Event, text string) error {
	msg := tgbotapi.NewMessage(ev.ChatID, truncate(text, maxMessageLength))
	msg.ReplyToMessageID = ev.MessageID
	if _, err := r.sender.Send(msg); err != nil {
		return errors.Wrap(err, "send message")
	}
	return nil
}

func (r *Router) sendProcessingError(ctx context.Context, ev Event) {
	// второй сбой только логируем
	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic while sending error reply", zap.Any("panic", p))
		}
	}()
	if err := r.reply(ev, r.locale.ProcessingError); err != nil {
		logger.Warn(ctx, "could not send error reply", zap.Error(err))
	}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
